package xiaohongshu

import "time"

type Config struct {
	PageLoadTimeout      time.Duration // 打开发布页超时
	ElementWaitTimeout   time.Duration // 单个元素等待超时
	LoginWaitTimeout     time.Duration // 等待人工完成登录的上限
	LoginCheckInterval   time.Duration // 登录态轮询间隔
	UploadSettleInterval time.Duration // 相邻两张图片上传之间的固定等待
	PostUploadSettle     time.Duration // 全部图片提交后等服务端处理的固定等待
	ChallengeWindow      time.Duration // 提交后观察滑块验证出现的窗口
	ChallengeSettle      time.Duration // 拖动滑块后观察结果的窗口
	ConfirmTimeout       time.Duration // 等待发布成功信号的上限
	ConfirmCheckInterval time.Duration // 成功信号轮询间隔
	TitleMaxLength       int           // 标题字数上限（按字符计）
	BodyMaxLength        int           // 正文字数上限（按字符计）
	AutoConfirm          bool          // false时未确认成功的运行保留浏览器窗口给人工处理
}

var defaultConfig = Config{
	PageLoadTimeout:      30 * time.Second,
	ElementWaitTimeout:   5 * time.Second,
	LoginWaitTimeout:     5 * time.Minute,
	LoginCheckInterval:   2 * time.Second,
	UploadSettleInterval: 1500 * time.Millisecond,
	PostUploadSettle:     3 * time.Second,
	ChallengeWindow:      3 * time.Second,
	ChallengeSettle:      2 * time.Second,
	ConfirmTimeout:       10 * time.Second,
	ConfirmCheckInterval: 500 * time.Millisecond,
	TitleMaxLength:       20,
	BodyMaxLength:        1000,
	AutoConfirm:          true,
}

func DefaultConfig() Config {
	return defaultConfig
}
