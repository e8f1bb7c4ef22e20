// Package painter 按内容计划逐张生成图片
package painter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/store"
	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"
	"github.com/asevenm/xhs-anime-ip/internal/utils/retry"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"
)

const (
	defaultAPIURL = "https://api.nano-banana.example.com/generate"

	promptSuffix   = ", studio ghibli style, anime background, 4k, detailed"
	negativePrompt = "low quality, text, watermark, ugly, deformed"

	// 小红书3:4图最合适的出图尺寸
	imageWidth  = 1024
	imageHeight = 1280
	imageSteps  = 25

	maxAttempts   = 3
	retryInterval = 5 * time.Second
)

type Painter struct {
	apiURL  string
	apiKey  string
	store   *store.Store
	client  *req.Client
	breaker *retry.CircuitBreaker
}

func NewPainter(s *store.Store) *Painter {
	apiURL := os.Getenv("IMAGE_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Painter{
		apiURL: apiURL,
		apiKey: os.Getenv("IMAGE_API_KEY"),
		store:  s,
		client: req.C().SetTimeout(2 * time.Minute),
		// 接口连续挂掉时别再拿剩余的图硬砸
		breaker: retry.NewCircuitBreaker(3, 1*time.Minute),
	}
}

// simulationMode 没有配置真实接口时本地生成占位图
func (p *Painter) simulationMode() bool {
	return p.apiKey == "" || strings.Contains(p.apiURL, "example.com")
}

// PaintAll 为内容计划的每个prompt生成图片，已存在的跳过
// 单张失败记录后继续，返回第一个遇到的错误
func (p *Painter) PaintAll(ctx context.Context, content *types.DailyContent) error {
	var firstErr error

	for i, prompt := range content.ImagePrompts {
		outputPath := p.store.ImagePath(content.Date, i+1)

		if _, err := os.Stat(outputPath); err == nil {
			utils.Info(fmt.Sprintf("[-] 图片 %d.png 已存在，跳过", i+1))
			continue
		}

		if err := p.paintOne(ctx, prompt, outputPath, i+1); err != nil {
			utils.Error(fmt.Sprintf("失败: 生成图片 %d - %v", i+1, err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		utils.Success(fmt.Sprintf("[+] 图片已保存: %s", outputPath))
	}

	return firstErr
}

func (p *Painter) paintOne(ctx context.Context, prompt, outputPath string, index int) error {
	utils.Info(fmt.Sprintf("[-] 生成图片 %d...", index))

	if p.simulationMode() {
		utils.Warn(fmt.Sprintf("[-] 模拟模式: 未配置图片接口，生成占位图 -> %s", outputPath))
		return writePlaceholder(outputPath, index)
	}

	return retry.RetryWithFixedInterval(ctx, maxAttempts-1, retryInterval, func() error {
		return p.breaker.Execute(func() error {
			return p.requestImage(prompt, outputPath)
		})
	})
}

// requestImage 调用生成接口并把结果写到outputPath
// 响应兼容两种形态：JSON带url字段（二次下载），或直接返回图片二进制
func (p *Painter) requestImage(prompt, outputPath string) error {
	payload := map[string]interface{}{
		"prompt":          prompt + promptSuffix,
		"negative_prompt": negativePrompt,
		"width":           imageWidth,
		"height":          imageHeight,
		"steps":           imageSteps,
	}

	resp, err := p.client.R().
		SetHeader("Authorization", "Bearer "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBodyJsonMarshal(payload).
		Post(p.apiURL)
	if err != nil {
		return fmt.Errorf("请求图片接口失败: %w", err)
	}
	if !resp.IsSuccessState() {
		return fmt.Errorf("图片接口返回错误状态: %s", resp.Status)
	}

	body := resp.Bytes()

	if url := gjson.GetBytes(body, "url").String(); url != "" {
		imgResp, err := p.client.R().Get(url)
		if err != nil {
			return fmt.Errorf("下载图片失败: %w", err)
		}
		if !imgResp.IsSuccessState() {
			return fmt.Errorf("下载图片返回错误状态: %s", imgResp.Status)
		}
		body = imgResp.Bytes()
	}

	if err := os.WriteFile(outputPath, body, 0644); err != nil {
		return fmt.Errorf("写入图片失败: %w", err)
	}
	return nil
}
