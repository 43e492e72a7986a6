package generator

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	openai "github.com/openai/openai-go"

	"edu_video_generator/analyzer"
)

// DefaultTimeout bounds the remote completion call.
const DefaultTimeout = 30 * time.Second

// Generator turns a topic into a scene-split Script via the configured LLM,
// falling back to the static per-pattern script when the remote call fails.
type Generator struct {
	llm     LLMClient
	timeout time.Duration
	logger  *log.Logger
}

func NewGenerator(llm LLMClient, timeout time.Duration, logger *log.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{llm: llm, timeout: timeout, logger: logger}, nil
}

// Generate issues one synchronous completion call and splits the response
// into sceneCount scenes. Upstream failures (auth, rate limit, timeout,
// malformed payload) never propagate: the per-pattern fallback script is
// returned instead, with the failure category recorded on the Script.
func (g *Generator) Generate(ctx context.Context, topic string, pattern analyzer.Pattern, sceneCount int) Script {
	prompt := BuildScriptPrompt(topic, pattern, sceneCount)

	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.llm.Complete(cctx, prompt)
	if err != nil {
		reason := classifyLLMError(err)
		g.logger.Printf("[generator] completion failed (%s): %v, using fallback script", reason, err)
		return FallbackScript(topic, pattern, sceneCount, reason)
	}
	if strings.TrimSpace(raw) == "" {
		g.logger.Printf("[generator] model returned empty output, using fallback script")
		return FallbackScript(topic, pattern, sceneCount, "malformed_response")
	}

	return Script{
		Topic:   topic,
		Pattern: pattern,
		Scenes:  SplitScenes(raw, sceneCount),
	}
}

// classifyLLMError maps an upstream error onto the three handled failure
// categories plus a generic bucket.
func classifyLLMError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return "auth"
		case 429:
			return "rate_limit"
		}
	}
	return "api_error"
}
