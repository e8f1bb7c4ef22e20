package xiaohongshu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/config"
	"github.com/asevenm/xhs-anime-ip/internal/platform/browser"
	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// Publisher 小红书图文笔记发布器
// 单次Publish运行独占一个浏览器会话，运行结束会话必然释放
type Publisher struct {
	platform string
	config   Config
}

func NewPublisher() *Publisher {
	return &Publisher{
		platform: "xiaohongshu",
		config:   DefaultConfig(),
	}
}

func NewPublisherWithConfig(cfg Config) *Publisher {
	return &Publisher{
		platform: "xiaohongshu",
		config:   cfg,
	}
}

func (p *Publisher) Platform() string {
	return p.platform
}

// Publish 发布一篇图文笔记，每次运行恰好产生一个结果
//
// 流程：获取会话 → 登录检查 → 逐张上传图片 → 填写表单 → 提交并确认。
// 不可恢复的失败（无内容、登录超时、找不到发布按钮）短路为终态；
// 局部可恢复的失败（个别图片上传失败、单个表单字段缺失）记录后继续。
// 所有失败都体现在返回值里，不向调用方抛出。
func (p *Publisher) Publish(ctx context.Context, note *types.ImageNote) (result *types.PublishResult) {
	// 没有图片不值得起浏览器
	if note == nil || len(note.Images) == 0 {
		return &types.PublishResult{
			Status:      types.PublishStatusNoWorkItem,
			Diagnostics: "没有可发布的内容（图片列表为空）",
		}
	}

	// 驱动层的意外异常收敛到结果里，不穿透发布器边界
	defer func() {
		if r := recover(); r != nil {
			utils.ErrorWithPlatform(p.platform, fmt.Sprintf("失败: 发布 - 未预期的异常: %v", r))
			result = &types.PublishResult{
				Status:      types.PublishStatusError,
				Diagnostics: fmt.Sprintf("未预期的异常: %v", r),
			}
		}
	}()

	utils.InfoWithPlatform(p.platform, fmt.Sprintf("开始发布: %s（%d张图片）", note.Title, len(note.Images)))

	session, err := browser.Open(browser.Options{
		ProfileDir: config.Config.ProfilePath,
		Headless:   config.Config.Headless,
	})
	if err != nil {
		return &types.PublishResult{
			Status:      types.PublishStatusError,
			Diagnostics: err.Error(),
		}
	}
	defer session.Close()

	result = p.publishWithSession(ctx, session, note)

	// 需要人工收尾的终态保留浏览器窗口
	if !p.config.AutoConfirm &&
		(result.Status == types.PublishStatusChallengeUnresolved ||
			result.Status == types.PublishStatusSubmissionTimeout) {
		session.KeepOpen()
	}
	return result
}

func (p *Publisher) publishWithSession(ctx context.Context, session *browser.Session, note *types.ImageNote) *types.PublishResult {
	page, err := session.Page()
	if err != nil {
		return &types.PublishResult{
			Status:      types.PublishStatusError,
			Diagnostics: fmt.Sprintf("获取页面失败: %v", err),
		}
	}

	utils.InfoWithPlatform(p.platform, "正在打开发布页面...")
	if _, err := page.Goto(Locators.ComposerURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(p.config.PageLoadTimeout.Milliseconds())),
	}); err != nil {
		return &types.PublishResult{
			Status:      types.PublishStatusError,
			Diagnostics: fmt.Sprintf("打开发布页失败: %v", err),
		}
	}
	time.Sleep(3 * time.Second)

	// 登录门：未登录则挂起等人工完成
	if err := p.ensureAuthenticated(page); err != nil {
		if errors.Is(err, ErrLoginTimeout) {
			return &types.PublishResult{
				Status:      types.PublishStatusLoginTimeout,
				Diagnostics: "等待登录超时，本次未尝试发布",
			}
		}
		return &types.PublishResult{
			Status:      types.PublishStatusError,
			Diagnostics: err.Error(),
		}
	}

	// 逐张上传
	uploads, inputFound := p.uploadAll(ctx, page, note.Images)
	if !inputFound {
		return &types.PublishResult{
			Status:      types.PublishStatusElementNotFound,
			Diagnostics: "未找到图片上传控件",
			Uploads:     uploads,
		}
	}

	// 填写表单（尽力而为）
	formDiag, err := p.fillForm(page, note)
	if err != nil {
		return &types.PublishResult{
			Status:      types.PublishStatusElementNotFound,
			Diagnostics: err.Error(),
			Uploads:     uploads,
		}
	}

	// 提交并跟踪到终态
	status, diag := p.submit(page)

	if status == types.PublishStatusSuccess {
		failed := 0
		for _, u := range uploads {
			if !u.Success {
				failed++
			}
		}
		if failed > 0 {
			status = types.PublishStatusPartialFailure
			diag = fmt.Sprintf("已发布，但%d张图片上传失败", failed)
		}
		utils.SuccessWithPlatform(p.platform, "发布成功")
	}

	if formDiag != "" {
		if diag == "" {
			diag = formDiag
		} else {
			diag = diag + "；" + formDiag
		}
	}

	return &types.PublishResult{
		Status:      status,
		Diagnostics: diag,
		Uploads:     uploads,
	}
}

func (p *Publisher) debugLog(format string, args ...interface{}) {
	if config.Config != nil && config.Config.DebugMode {
		utils.DebugWithPlatform(p.platform, fmt.Sprintf(format, args...))
	}
}
