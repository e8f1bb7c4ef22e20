package xiaohongshu

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/config"
	"github.com/asevenm/xhs-anime-ip/internal/platform/browser"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// ErrLoginTimeout 等待人工登录超时
var ErrLoginTimeout = errors.New("等待登录超时")

// Login 打开可见的浏览器窗口供人工登录
// 登录态随浏览器配置目录持久化，后续运行直接复用
func (p *Publisher) Login() error {
	session, err := browser.Open(browser.Options{
		ProfileDir: config.Config.ProfilePath,
		Headless:   false,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	page, err := session.Page()
	if err != nil {
		return fmt.Errorf("失败: 登录 - 获取页面失败: %w", err)
	}

	utils.InfoWithPlatform(p.platform, "正在打开发布页面...")
	if _, err := page.Goto(Locators.ComposerURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("失败: 登录 - 打开页面失败: %w", err)
	}
	time.Sleep(3 * time.Second)

	if err := p.ensureAuthenticated(page); err != nil {
		return fmt.Errorf("失败: 登录 - %w", err)
	}

	utils.SuccessWithPlatform(p.platform, "登录态已保存")
	return nil
}

// isLoginWall 判断当前页面是否是登录墙
func isLoginWall(page playwright.Page) bool {
	if strings.Contains(page.URL(), Locators.LoginURLFragment) {
		return true
	}
	_, found := Resolve(page, RoleLoginWall)
	return found
}

// ensureAuthenticated 确认当前处于已登录的发布页
//
// 检测到登录墙时挂起流程，轮询等待人工在可见的浏览器窗口中完成登录、
// 页面跳回发布页路由为止；超出LoginWaitTimeout返回ErrLoginTimeout。
// 未检测到登录墙时立即返回。
func (p *Publisher) ensureAuthenticated(page playwright.Page) error {
	if !isLoginWall(page) {
		return nil
	}

	utils.InfoWithPlatform(p.platform, "检测到登录墙，请在浏览器窗口中完成登录...")

	timeout := time.After(p.config.LoginWaitTimeout)
	ticker := time.NewTicker(p.config.LoginCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return ErrLoginTimeout
		case <-ticker.C:
			if page.IsClosed() {
				return fmt.Errorf("失败: 等待登录 - 页面已关闭")
			}
			if !isLoginWall(page) && strings.Contains(page.URL(), "/publish/publish") {
				utils.SuccessWithPlatform(p.platform, "登录成功")
				return nil
			}
			// 登录完成后有些路径停在首页，主动回到发布页
			if !isLoginWall(page) {
				if _, err := page.Goto(Locators.ComposerURL, playwright.PageGotoOptions{
					WaitUntil: playwright.WaitUntilStateDomcontentloaded,
				}); err != nil {
					utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 等待登录 - 返回发布页失败: %v", err))
				}
			}
		}
	}
}
