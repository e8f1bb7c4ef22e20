package planner

import "fmt"

const systemPrompt = "You are a helpful assistant. Output valid JSON only."

// buildPrompt 生成当日内容策划的提示词
func buildPrompt(today string) string {
	return fmt.Sprintf(`你是小红书新海诚风格壁纸账号的创意总监。我们的定位是"新海诚美学"——极致光影与超写实壁纸感。

任务：为今天（%s）策划内容。

要求：
1. 选择一个光影氛围感极强的主题（如：黄昏的天空、雨后的城市、星空下的少年少女、阳光穿透云层的瞬间等）

2. 标题、正文、标签必须用中文，要贴合小红书用户喜好，情感共鸣强，适当使用emoji，突出"壁纸党"、"治愈"、"光影美学"等关键词

3. 生成6个详细的图片prompt，英文撰写，优化用于AI绘图：
   - 风格权重标记：必须使用 (Makoto Shinkai style:1.5)
   - 极致光影：必须包含复杂的光线效果词汇（volumetric lighting, god rays, golden hour, lens flare, backlit, dramatic sunlight等）
   - 天空：photorealistic clouds, towering cumulus, dramatic sky gradients, sunset afterglow
   - 反射：wet surface reflections, puddle reflections, city lights reflecting
   - 超写实壁纸感：8K wallpaper quality, hyper-detailed, photorealistic, cinematic composition, atmospheric perspective
   - 新海诚标志性元素：电车、天台、十字路口、铁道口、城市夜景、星空、雨滴、飘雪、飞散的樱花花瓣
   - 6张图可使用同一个经典动漫IP的角色，保持角色统一性；角色必须清晰描述外貌特征（发色、服装、标志性物品）
   - 6张图保持新海诚光影风格统一，场景各异
   - 固定后缀：每个prompt必须以" --ar 3:4"结尾

输出JSON，字段：date（%s）、theme、title、content、tags（数组，带#）、image_prompts（6个元素的数组）。严格遵守该结构。`, today, today)
}
