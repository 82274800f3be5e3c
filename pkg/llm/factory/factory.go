package factory

import (
	"fmt"

	"clinical-chat-be/pkg/llm"
	"clinical-chat-be/pkg/llm/ollama"
	"clinical-chat-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured LLM backend.
func NewLLMProvider(provider, modelName, ollamaBaseURL, openAIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
