package chains

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// ErrEmptyCompletion is returned when the model produces no choices.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Invoker executes a system/user prompt pair against a model and
// unmarshals the JSON object it returns.
type Invoker interface {
	CompleteJSON(ctx context.Context, system, user string, out any) error
}

// LangChainInvoker adapts a langchaingo llms.Model to the Invoker interface.
type LangChainInvoker struct {
	Model llms.Model

	// Temperature is passed on every call. Zero keeps answers
	// deterministic, which grading and routing depend on.
	Temperature float64
}

// NewLangChainInvoker creates an invoker around a langchaingo model.
func NewLangChainInvoker(model llms.Model) *LangChainInvoker {
	return &LangChainInvoker{Model: model}
}

// CompleteJSON runs the prompt in JSON mode and unmarshals the response.
func (i *LangChainInvoker) CompleteJSON(ctx context.Context, system, user string, out any) error {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	response, err := i.Model.GenerateContent(ctx, messages,
		llms.WithJSONMode(), llms.WithTemperature(i.Temperature))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return ErrEmptyCompletion
	}

	payload := stripJSONFences(response.Choices[0].Content)
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("malformed model output: %w", err)
	}
	return nil
}

// stripJSONFences removes a markdown code fence some models wrap around
// JSON output even in JSON mode.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
