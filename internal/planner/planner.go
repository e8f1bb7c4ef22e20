// Package planner 调用文本模型生成每日内容计划
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/store"
	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Planner struct {
	provider ProviderConfig
	store    *store.Store
}

func NewPlanner(s *store.Store) *Planner {
	return &Planner{
		provider: ResolveProvider(),
		store:    s,
	}
}

// GenerateDailyPlan 生成当日内容计划并保存到 content/<date>/meta.json
func (p *Planner) GenerateDailyPlan(ctx context.Context) (*types.DailyContent, error) {
	if p.provider.APIKey == "" {
		return nil, fmt.Errorf("失败: 生成内容计划 - 未配置 %s 的API Key", p.provider.Name)
	}

	utils.Info(fmt.Sprintf("[-] 文本模型: %s | %s", p.provider.Name, p.provider.Model))

	today := time.Now().Format("2006-01-02")

	client := openai.NewClient(
		option.WithAPIKey(p.provider.APIKey),
		option.WithBaseURL(p.provider.BaseURL),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.provider.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(today)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("失败: 生成内容计划 - 模型调用失败: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("失败: 生成内容计划 - 模型没有返回内容")
	}

	content, err := ParseContent([]byte(completion.Choices[0].Message.Content), today)
	if err != nil {
		return nil, err
	}

	if err := p.store.SaveMeta(content); err != nil {
		return nil, err
	}

	utils.Success(fmt.Sprintf("[+] 内容计划已生成: %s | %s", content.Date, content.Title))
	return content, nil
}

// ParseContent 解析模型返回的JSON为内容计划
// date字段缺失时以fallbackDate补齐
func ParseContent(data []byte, fallbackDate string) (*types.DailyContent, error) {
	var content types.DailyContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("失败: 生成内容计划 - 解析模型输出失败: %w", err)
	}

	if content.Date == "" {
		content.Date = fallbackDate
	}
	if content.Title == "" {
		return nil, fmt.Errorf("失败: 生成内容计划 - 模型输出缺少标题")
	}
	if len(content.ImagePrompts) == 0 {
		return nil, fmt.Errorf("失败: 生成内容计划 - 模型输出缺少图片prompt")
	}
	if len(content.ImagePrompts) > store.MaxImages {
		content.ImagePrompts = content.ImagePrompts[:store.MaxImages]
	}

	return &content, nil
}
