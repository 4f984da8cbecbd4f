package chains

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIInvoker implements Invoker on the go-openai client, using the
// native JSON response format of the chat completions API. The client's
// base URL can point at any OpenAI-compatible server.
type OpenAIInvoker struct {
	Client *openai.Client
	Model  string

	// Temperature is passed on every call. Zero keeps answers
	// deterministic, which grading and routing depend on.
	Temperature float32
}

// NewOpenAIInvoker creates an invoker around a go-openai client.
func NewOpenAIInvoker(client *openai.Client, model string) *OpenAIInvoker {
	return &OpenAIInvoker{Client: client, Model: model}
}

// CompleteJSON runs the prompt with a JSON response format and unmarshals
// the response.
func (i *OpenAIInvoker) CompleteJSON(ctx context.Context, system, user string, out any) error {
	resp, err := i.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       i.Model,
		Temperature: i.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ErrEmptyCompletion
	}

	payload := stripJSONFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("malformed model output: %w", err)
	}
	return nil
}
