// Package browser 管理持久化的浏览器会话
//
// 会话绑定一个磁盘上的用户数据目录，登录态随目录跨运行保留。
// 同一配置目录同时只允许一个会话。
package browser

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// Session 一次运行独占的浏览器会话
type Session struct {
	pw       *playwright.Playwright
	context  playwright.BrowserContext
	page     playwright.Page
	keepOpen bool
	closed   bool
	mu       sync.Mutex
}

// profileMu 串行化同一进程内对配置目录的会话获取
var profileMu sync.Mutex

// Options 会话启动选项
type Options struct {
	ProfileDir string // 浏览器用户数据目录，不存在时创建
	Headless   bool
}

// Open 启动绑定配置目录的持久化浏览器上下文并返回会话
// 调用方必须保证最终调用 Close（任何退出路径）
func Open(opts Options) (*Session, error) {
	if !profileMu.TryLock() {
		return nil, fmt.Errorf("失败: 启动浏览器 - 已有会话占用浏览器配置")
	}

	if err := os.MkdirAll(opts.ProfileDir, 0755); err != nil {
		profileMu.Unlock()
		return nil, fmt.Errorf("失败: 启动浏览器 - 创建配置目录失败: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		profileMu.Unlock()
		return nil, fmt.Errorf("失败: 启动浏览器 - 启动playwright失败: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(opts.Headless),
		Locale:   playwright.String("zh-CN"),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--window-size=1920,1080",
			"--disable-infobars",
			"--disable-extensions",
			"--disable-default-apps",
			"--disable-background-networking",
			"--disable-sync",
			"--disable-translate",
			"--disable-popup-blocking",
		},
	}

	if chromePath := findLocalChrome(); chromePath != "" {
		launchOptions.ExecutablePath = playwright.String(chromePath)
		utils.Info("[-] 使用本地 Chrome")
	}

	context, err := pw.Chromium.LaunchPersistentContext(opts.ProfileDir, launchOptions)
	if err != nil {
		_ = pw.Stop()
		profileMu.Unlock()
		return nil, fmt.Errorf("失败: 启动浏览器 - 启动持久化上下文失败: %w", err)
	}

	if err := context.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		_ = context.Close()
		_ = pw.Stop()
		profileMu.Unlock()
		return nil, fmt.Errorf("失败: 启动浏览器 - 注入反检测脚本失败: %w", err)
	}

	return &Session{pw: pw, context: context}, nil
}

// Page 获取或创建会话页面
func (s *Session) Page() (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page != nil && !s.page.IsClosed() {
		return s.page, nil
	}

	// 持久化上下文启动时通常自带一个空白页
	pages := s.context.Pages()
	if len(pages) > 0 {
		s.page = pages[0]
	} else {
		page, err := s.context.NewPage()
		if err != nil {
			return nil, fmt.Errorf("失败: 获取页面 - %w", err)
		}
		s.page = page
	}

	s.page.SetDefaultTimeout(30000)
	s.page.SetDefaultNavigationTimeout(30000)
	return s.page, nil
}

// KeepOpen 标记会话交由人工接管，Close时不再关闭浏览器窗口
func (s *Session) KeepOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keepOpen = true
}

// Close 释放会话，任何退出路径都必须执行
// 被KeepOpen标记时保留浏览器窗口，仅释放配置目录占用
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	defer profileMu.Unlock()

	if s.keepOpen {
		utils.Info("[-] 会话交由人工接管，浏览器窗口保持打开")
		return
	}

	if err := s.context.Close(); err != nil {
		utils.Warn(fmt.Sprintf("[-] 关闭浏览器上下文失败: %v", err))
	}
	if err := s.pw.Stop(); err != nil {
		utils.Warn(fmt.Sprintf("[-] 停止playwright失败: %v", err))
	}
	utils.Info("[-] 浏览器会话已释放")
}

// findLocalChrome 查找本地 Chrome
func findLocalChrome() string {
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
		}
	case "darwin":
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	default:
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium-browser",
		}
	}

	for _, path := range paths {
		if path != "" {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// stealthScript 抹掉常见的自动化痕迹
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['zh-CN', 'zh', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
window.chrome = window.chrome || { runtime: {} };
`
