package planner

import (
	"os"
	"strings"
)

// ProviderConfig 文本模型提供商配置
// 全部走OpenAI兼容接口，切换提供商只是换base URL和key
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// resolveProvider 根据环境变量选择提供商，未知时回退到gemini
func resolveProvider(getenv func(string) string) ProviderConfig {
	provider := strings.ToLower(getenv("TEXT_LLM_PROVIDER"))

	switch provider {
	case "doubao":
		model := getenv("LLM_MODEL_NAME")
		if model == "" {
			model = "Doubao-1.5-pro-32k"
		}
		return ProviderConfig{
			Name:    "Ark (OpenAI Interface)",
			APIKey:  getenv("ARK_API_KEY"),
			BaseURL: "https://ark.cn-beijing.volces.com/api/v3",
			Model:   model,
		}
	case "dashscope":
		model := getenv("LLM_MODEL_NAME")
		if model == "" {
			model = "qwen3-max"
		}
		return ProviderConfig{
			Name:    "Dashscope (OpenAI Interface)",
			APIKey:  getenv("DASHSCOPE_API_KEY"),
			BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:   model,
		}
	default:
		return ProviderConfig{
			Name:    "Gemini (OpenAI Interface)",
			APIKey:  getenv("GEMINI_API_KEY"),
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:   "gemini-2.5-pro",
		}
	}
}

// ResolveProvider 从进程环境变量选择提供商
func ResolveProvider() ProviderConfig {
	return resolveProvider(os.Getenv)
}
