package xiaohongshu

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Role 页面上的逻辑角色
// 角色与具体选择器解耦：页面结构变化时只需要更新Locators表
type Role string

const (
	RoleLoginWall        Role = "login-wall"
	RoleImageUploadInput Role = "image-upload-input"
	RoleTitleField       Role = "title-field"
	RoleBodyField        Role = "body-field"
	RoleSubmitButton     Role = "submit-button"
	RoleChallengeSlider  Role = "challenge-slider"
	RoleSuccessIndicator Role = "success-indicator"
)

// PageLocators 小红书图文发布页的定位配置
// 每个角色按声明顺序尝试候选选择器，第一个命中的生效
type PageLocators struct {
	ComposerURL        string
	ComposerURLPattern string // 已登录的发布页路由
	SuccessURLPattern  string // 发布成功跳转路由
	LoginURLFragment   string // 登录墙路由特征
	Candidates         map[Role][]string
}

var Locators = PageLocators{
	ComposerURL:        "https://creator.xiaohongshu.com/publish/publish?from=menu&target=image",
	ComposerURLPattern: "**/publish/publish**",
	SuccessURLPattern:  "**/publish/success**",
	LoginURLFragment:   "login",
	Candidates: map[Role][]string{
		RoleLoginWall: {
			`.login-box`,
			`[class*='login-container']`,
			`img.css-wemwzq`,
		},
		RoleImageUploadInput: {
			`div.upload-wrapper input[type="file"]`,
			`input.upload-input[type="file"]`,
			`input[type="file"]`,
		},
		RoleTitleField: {
			`input.d-text[placeholder*='标题']`,
			`input[placeholder*='填写标题']`,
			`input.d-text[type='text']`,
		},
		RoleBodyField: {
			`.tiptap.ProseMirror`,
			`div[contenteditable='true']`,
			`#post-textarea`,
		},
		RoleSubmitButton: {
			`button.publishBtn`,
			`div.submit button:has-text('发布')`,
			`button:has-text('发布')`,
		},
		RoleChallengeSlider: {
			`.red-captcha-slider`,
			`[class*='captcha'] [class*='slider']`,
			`[class*='verify-slider']`,
		},
		RoleSuccessIndicator: {
			`text=发布成功`,
			`[class*='publish-success']`,
			`.success-container`,
		},
	},
}

// Resolve 按声明顺序解析角色的候选选择器
// 返回第一个当前命中至少一个元素的定位器；全部落空时返回 ok=false
// 解析器本身不等待不重试，重试由调用方决定
func Resolve(page playwright.Page, role Role) (playwright.Locator, bool) {
	candidates := Locators.Candidates[role]
	idx, ok := firstMatch(candidates, func(sel string) bool {
		count, err := page.Locator(sel).Count()
		return err == nil && count > 0
	})
	if !ok {
		return nil, false
	}
	return page.Locator(candidates[idx]), true
}

// ResolveWithin 在timeout内轮询解析角色，适用于渲染较晚的元素
func ResolveWithin(page playwright.Page, role Role, timeout time.Duration) (playwright.Locator, bool) {
	var loc playwright.Locator
	found := pollUntil(timeout, 250*time.Millisecond, func() bool {
		var ok bool
		loc, ok = Resolve(page, role)
		return ok
	})
	return loc, found
}

// firstMatch 返回第一个命中候选的下标，后续候选不再评估
func firstMatch(candidates []string, match func(string) bool) (int, bool) {
	for i, sel := range candidates {
		if match(sel) {
			return i, true
		}
	}
	return -1, false
}

// pollUntil 以固定间隔轮询condition，命中返回true，超时返回false
// condition至少评估一次
func pollUntil(timeout, interval time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}
