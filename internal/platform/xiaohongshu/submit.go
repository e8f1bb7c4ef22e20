package xiaohongshu

import (
	"fmt"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// submitState 提交流程状态
type submitState string

const (
	stateIdle               submitState = "idle"
	stateSubmitted          submitState = "submitted"
	stateObservingChallenge submitState = "observing_challenge"
	stateResolvingChallenge submitState = "resolving_challenge"
	stateAwaitingConfirm    submitState = "awaiting_confirmation"
)

const (
	// sliderDragOffset 滑块水平拖动距离，近似滑轨宽度
	sliderDragOffset = 260.0
	// sliderDragSteps 拖动插值步数，避免瞬移式轨迹
	sliderDragSteps = 12
)

// submit 触发发布并跟踪到终态
//
// 状态机：Idle → Submitted → ObservingChallenge →
// (ChallengeDetected → ResolvingChallenge → Resolved|Unresolved) →
// AwaitingConfirmation → Confirmed|TimedOut
//
// 滑块验证只做一次尽力而为的拖动尝试，不重试；
// 未通过直接以ChallengeUnresolved终止，不再等待成功信号。
func (p *Publisher) submit(page playwright.Page) (types.PublishStatus, string) {
	p.enterState(stateIdle)

	button, found := ResolveWithin(page, RoleSubmitButton, p.config.ElementWaitTimeout)
	if !found {
		return types.PublishStatusElementNotFound, "未找到发布按钮"
	}
	if err := button.First().Click(); err != nil {
		return types.PublishStatusError, fmt.Sprintf("点击发布按钮失败: %v", err)
	}
	p.enterState(stateSubmitted)
	utils.InfoWithPlatform(p.platform, "已点击发布，观察是否出现滑块验证...")

	p.enterState(stateObservingChallenge)
	slider, detected := p.observeChallenge(page)
	if detected {
		p.enterState(stateResolvingChallenge)
		utils.WarnWithPlatform(p.platform, "检测到滑块验证，尝试自动拖动...")
		if !p.resolveChallenge(page, slider) {
			_ = utils.Screenshot(page, "challenge_unresolved")
			return types.PublishStatusChallengeUnresolved, "滑块验证未通过，需人工处理"
		}
		utils.InfoWithPlatform(p.platform, "滑块验证已通过")
	}

	p.enterState(stateAwaitingConfirm)
	if p.awaitConfirmation(page) {
		return types.PublishStatusSuccess, ""
	}

	_ = utils.Screenshot(page, "confirm_timeout")
	return types.PublishStatusSubmissionTimeout, "限时内未观察到发布成功信号，请人工核实"
}

func (p *Publisher) enterState(s submitState) {
	p.debugLog("提交状态: %s", s)
}

// observeChallenge 在短窗口内观察滑块验证是否出现
// 不出现是常态，窗口结束直接进入确认阶段
func (p *Publisher) observeChallenge(page playwright.Page) (playwright.Locator, bool) {
	deadline := time.Now().Add(p.config.ChallengeWindow)
	for time.Now().Before(deadline) {
		if slider, found := Resolve(page, RoleChallengeSlider); found {
			if visible, _ := slider.First().IsVisible(); visible {
				return slider, true
			}
		}
		time.Sleep(250 * time.Millisecond)
	}
	return nil, false
}

// resolveChallenge 对滑块做一次模拟人手的拖动
//
// 从滑块中心按下，分多步插值移动到固定水平偏移处松开。
// 拖动后滑块消失或出现成功信号视为通过。
func (p *Publisher) resolveChallenge(page playwright.Page, slider playwright.Locator) bool {
	box, err := slider.First().BoundingBox()
	if err != nil || box == nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 滑块验证 - 获取滑块位置失败: %v", err))
		return false
	}

	startX := box.X + box.Width/2
	startY := box.Y + box.Height/2

	mouse := page.Mouse()
	if err := mouse.Move(startX, startY); err != nil {
		return false
	}
	if err := mouse.Down(); err != nil {
		return false
	}
	for i := 1; i <= sliderDragSteps; i++ {
		x := startX + sliderDragOffset*float64(i)/float64(sliderDragSteps)
		// 纵向加一点抖动，轨迹更接近人手
		y := startY + float64(i%3-1)
		if err := mouse.Move(x, y, playwright.MouseMoveOptions{Steps: playwright.Int(2)}); err != nil {
			_ = mouse.Up()
			return false
		}
		time.Sleep(30 * time.Millisecond)
	}
	if err := mouse.Up(); err != nil {
		return false
	}

	// 观察拖动结果
	deadline := time.Now().Add(p.config.ChallengeSettle)
	for time.Now().Before(deadline) {
		if visible, err := slider.First().IsVisible(); err != nil || !visible {
			return true
		}
		if _, found := Resolve(page, RoleSuccessIndicator); found {
			return true
		}
		time.Sleep(250 * time.Millisecond)
	}
	return false
}

// awaitConfirmation 在限时内等待发布成功信号
// 信号来源：成功页路由跳转，或成功提示元素出现
func (p *Publisher) awaitConfirmation(page playwright.Page) bool {
	if err := page.WaitForURL(Locators.SuccessURLPattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(p.config.ConfirmTimeout.Milliseconds()) / 2),
	}); err == nil {
		return true
	}

	deadline := time.Now().Add(p.config.ConfirmTimeout / 2)
	for time.Now().Before(deadline) {
		if indicator, found := Resolve(page, RoleSuccessIndicator); found {
			if visible, _ := indicator.First().IsVisible(); visible {
				return true
			}
		}
		time.Sleep(p.config.ConfirmCheckInterval)
	}
	return false
}
