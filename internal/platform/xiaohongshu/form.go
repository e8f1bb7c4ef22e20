package xiaohongshu

import (
	"fmt"
	"strings"

	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// fillForm 填写标题与正文
//
// 两个字段各自独立尝试：找不到其中一个不妨碍填另一个，
// 人工仍可在发布前补全（尽力而为语义）。两个都找不到时返回错误。
// 返回的diagnostics记录缺失的字段。
func (p *Publisher) fillForm(page playwright.Page, note *types.ImageNote) (diagnostics string, err error) {
	var missing []string

	if titleErr := p.fillTitle(page, note.Title); titleErr != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 填写标题 - %v", titleErr))
		missing = append(missing, "标题")
	}

	if bodyErr := p.fillBody(page, note.Body, note.Tags); bodyErr != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 填写正文 - %v", bodyErr))
		missing = append(missing, "正文")
	}

	if len(missing) == 2 {
		return "", fmt.Errorf("标题与正文输入框均未找到")
	}
	if len(missing) == 1 {
		diagnostics = fmt.Sprintf("%s输入框未找到，已跳过", missing[0])
	}
	return diagnostics, nil
}

func (p *Publisher) fillTitle(page playwright.Page, title string) error {
	input, found := Resolve(page, RoleTitleField)
	if !found {
		return fmt.Errorf("未找到标题输入框")
	}

	title = truncateRunes(title, p.config.TitleMaxLength)
	if err := input.First().Fill(title); err != nil {
		return fmt.Errorf("填写失败: %w", err)
	}

	utils.InfoWithPlatform(p.platform, fmt.Sprintf("标题已填写: %s", title))
	return nil
}

func (p *Publisher) fillBody(page playwright.Page, body string, tags []string) error {
	editor, found := Resolve(page, RoleBodyField)
	if !found {
		return fmt.Errorf("未找到正文编辑器")
	}

	text := truncateRunes(composeBody(body, tags), p.config.BodyMaxLength)

	// 正文是contenteditable编辑器，先聚焦再输入
	if err := editor.First().Click(); err != nil {
		return fmt.Errorf("点击编辑器失败: %w", err)
	}
	if err := editor.First().Fill(text); err != nil {
		return fmt.Errorf("填写失败: %w", err)
	}

	utils.InfoWithPlatform(p.platform, "正文已填写")
	return nil
}

// composeBody 正文拼接标签，标签之间以单个空格连接
func composeBody(body string, tags []string) string {
	var kept []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		kept = append(kept, tag)
	}
	if len(kept) == 0 {
		return body
	}
	if body == "" {
		return strings.Join(kept, " ")
	}
	return body + "\n\n" + strings.Join(kept, " ")
}

// truncateRunes 按字符截断到limit
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
