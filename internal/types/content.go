package types

// DailyContent 每日内容计划
// 由planner生成并保存为 content/<date>/meta.json，painter与发布器消费
type DailyContent struct {
	Date         string   `json:"date"`          // 日期，格式：2006-01-02
	Theme        string   `json:"theme"`         // 当日主题
	Title        string   `json:"title"`         // 小红书标题
	Content      string   `json:"content"`       // 正文
	Tags         []string `json:"tags"`          // 标签列表（带#）
	ImagePrompts []string `json:"image_prompts"` // 图片生成prompt列表
}

// ImageNote 待发布的图文笔记
// 交给发布器后不再修改；Images为本地已存在的图片路径，按发布顺序排列
type ImageNote struct {
	Title  string
	Body   string
	Tags   []string
	Images []string
}

// NoteFromContent 由内容计划和图片路径组装图文笔记
func NoteFromContent(c *DailyContent, images []string) *ImageNote {
	return &ImageNote{
		Title:  c.Title,
		Body:   c.Content,
		Tags:   c.Tags,
		Images: images,
	}
}
