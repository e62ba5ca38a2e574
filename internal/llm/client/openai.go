package llmclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI Chat Completions API, or any compatible
// endpoint when baseURL points elsewhere.
type OpenAIClient struct {
	cli      *openai.Client
	model    string
	tokenCap int
}

// NewOpenAIClient creates an OpenAI client. If apiKey is empty, it falls
// back to the OPENAI_API_KEY env var.
func NewOpenAIClient(apiKey, baseURL, model string, tokenCap int) (*OpenAIClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if tokenCap <= 0 {
		tokenCap = 16000
	}
	return &OpenAIClient{
		cli:      openai.NewClientWithConfig(cfg),
		model:    model,
		tokenCap: tokenCap,
	}, nil
}

func (o *OpenAIClient) Name() string { return "OpenAI:" + o.model }
func (o *OpenAIClient) Close() error { return nil }
func (o *OpenAIClient) CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return CountTokens(text)
}
func (o *OpenAIClient) TokenCapacity() int { return o.tokenCap }

func (o *OpenAIClient) chatRequest(system, user string) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})
	return openai.ChatCompletionRequest{Model: o.model, Messages: msgs}
}

func (o *OpenAIClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	resp, err := o.cli.CreateChatCompletion(ctx, o.chatRequest(system, user))
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateTextStream reads server-sent deltas until EOF, forwarding each
// to onChunk, and returns the concatenated reply.
func (o *OpenAIClient) GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error) {
	req := o.chatRequest(system, user)
	req.Stream = true
	stream, err := o.cli.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", mapOpenAIError(err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", mapOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		if onChunk != nil {
			onChunk(delta)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyReply
	}
	return sb.String(), nil
}

// mapOpenAIError marks errors that retrying cannot fix as permanent.
func mapOpenAIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.HTTPStatusCode {
	case 400, 401, 404:
		return NewPermanentError(fmt.Errorf("openai: status %d: %w", apiErr.HTTPStatusCode, err))
	default:
		return err
	}
}
