package xiaohongshu

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// uploadAll 将图片逐张提交到上传控件
//
// 返回与输入同序的逐张结果。单张失败只记录不中断（部分失败语义）；
// 找不到可用上传控件时所有图片记为失败并通过 inputFound=false 上报。
func (p *Publisher) uploadAll(ctx context.Context, page playwright.Page, images []string) (results []types.UploadResult, inputFound bool) {
	input, err := p.findImageInput(page)
	if err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 上传图片 - %v", err))
		for _, path := range images {
			results = append(results, types.UploadResult{Path: path, Reason: "未找到图片上传控件"})
		}
		return results, false
	}

	results = p.uploadSequential(ctx, images, func(path string) error {
		return p.uploadOne(input, path)
	})

	// 等服务端处理追上，再进入表单填写
	time.Sleep(p.config.PostUploadSettle)
	return results, true
}

// uploadSequential 按输入顺序逐张提交，返回与输入等长同序的逐张结果
// 单张失败只记录不中断，后续图片照常提交
func (p *Publisher) uploadSequential(ctx context.Context, images []string, submit func(path string) error) []types.UploadResult {
	results := make([]types.UploadResult, 0, len(images))

	for i, path := range images {
		select {
		case <-ctx.Done():
			results = append(results, types.UploadResult{Path: path, Reason: "上传已取消"})
			continue
		default:
		}

		utils.InfoWithPlatform(p.platform, fmt.Sprintf("上传图片 %d/%d: %s", i+1, len(images), path))

		if err := submit(path); err != nil {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 上传图片 - %v", err))
			results = append(results, types.UploadResult{Path: path, Reason: err.Error()})
		} else {
			results = append(results, types.UploadResult{Path: path, Success: true})
		}

		// 控件一次只能稳定接收一个文件，等页面消化完再继续
		time.Sleep(p.config.UploadSettleInterval)
	}

	return results
}

func (p *Publisher) uploadOne(input playwright.Locator, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("图片文件不存在: %w", err)
	}
	if err := input.SetInputFiles(path); err != nil {
		return fmt.Errorf("设置图片文件失败: %w", err)
	}
	return nil
}

// findImageInput 在页面的文件输入框中找到接收图片的那个
//
// 页面上可能同时存在视频和图片的上传入口，按accept属性筛选：
// 明确声明图片类型的优先，否则回退到第一个不限定视频的输入框。
func (p *Publisher) findImageInput(page playwright.Page) (playwright.Locator, error) {
	resolved, found := ResolveWithin(page, RoleImageUploadInput, p.config.ElementWaitTimeout)
	if !found {
		return nil, fmt.Errorf("未找到文件输入框")
	}

	inputs, err := resolved.All()
	if err != nil || len(inputs) == 0 {
		return nil, fmt.Errorf("未找到文件输入框")
	}

	accepts := make([]string, len(inputs))
	for i, input := range inputs {
		accept, err := input.GetAttribute("accept")
		if err != nil {
			accept = ""
		}
		accepts[i] = accept
	}

	idx := pickImageInput(accepts)
	if idx < 0 {
		return nil, fmt.Errorf("文件输入框均只接受视频")
	}
	return inputs[idx], nil
}

// pickImageInput 按accept属性选出图片上传输入框的下标
// 找不到可用的返回-1
func pickImageInput(accepts []string) int {
	// 优先：明确声明接受图片
	for i, accept := range accepts {
		a := strings.ToLower(accept)
		if strings.Contains(a, "image") || strings.Contains(a, ".png") || strings.Contains(a, ".jpg") || strings.Contains(a, ".jpeg") {
			return i
		}
	}
	// 回退：第一个不限定视频的
	for i, accept := range accepts {
		if !isVideoOnly(accept) {
			return i
		}
	}
	return -1
}

// isVideoOnly 判断accept属性是否只接受视频
func isVideoOnly(accept string) bool {
	a := strings.ToLower(strings.TrimSpace(accept))
	if a == "" {
		return false
	}
	for _, part := range strings.Split(a, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "video") && part != ".mp4" && part != ".mov" && part != ".avi" && part != ".flv" && part != ".mkv" {
			return false
		}
	}
	return true
}
