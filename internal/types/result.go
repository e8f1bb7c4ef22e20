package types

// PublishStatus 发布结果状态
type PublishStatus string

const (
	PublishStatusSuccess             PublishStatus = "success"               // 发布成功
	PublishStatusPartialFailure      PublishStatus = "partial_failure"       // 部分图片上传失败但已发布
	PublishStatusNoWorkItem          PublishStatus = "no_work_item"          // 没有可发布的内容
	PublishStatusLoginTimeout        PublishStatus = "login_timeout"         // 等待登录超时
	PublishStatusChallengeUnresolved PublishStatus = "challenge_unresolved"  // 滑块验证未通过
	PublishStatusSubmissionTimeout   PublishStatus = "submission_timeout"    // 未在限时内确认发布成功
	PublishStatusElementNotFound     PublishStatus = "element_not_found"     // 页面关键元素未找到
	PublishStatusError               PublishStatus = "error"                 // 未预期的错误
)

// UploadResult 单张图片的上传结果，顺序与输入一致
type UploadResult struct {
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"` // 失败原因，成功时为空
}

// PublishResult 一次发布运行的唯一结果
// 每次运行恰好产生一个；所有失败都体现在Status与Diagnostics中，不向外抛出
type PublishResult struct {
	Status      PublishStatus  `json:"status"`
	Diagnostics string         `json:"diagnostics"`
	Uploads     []UploadResult `json:"uploads"`
}

// UploadedCount 统计上传成功的图片数
func (r *PublishResult) UploadedCount() int {
	n := 0
	for _, u := range r.Uploads {
		if u.Success {
			n++
		}
	}
	return n
}

// FailedCount 统计上传失败的图片数
func (r *PublishResult) FailedCount() int {
	return len(r.Uploads) - r.UploadedCount()
}
