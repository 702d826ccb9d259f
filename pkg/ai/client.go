package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"cv-builder/pkg/ai/formatters"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrorText replaces the field value when the model call fails.
const ErrorText = "Error generating text. Please try again."

var (
	ErrMissingAPIKey = errors.New("ai: API key is required")
	errEmptyOutput   = errors.New("ai: model returned no text")
)

// Generator is the part of llms.Model the client uses.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Client rewrites free-text CV fields through an LLM.
type Client struct {
	llm             Generator
	DefaultLanguage string
}

// NewClient builds a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// NewClientWithGenerator wraps an existing model, e.g. a test double.
func NewClientWithGenerator(g Generator) *Client {
	return &Client{llm: g}
}

func (c *Client) NewSummaryFormatter() formatters.Formatter {
	return formatters.NewSummaryFormatter(c, c.DefaultLanguage)
}

func (c *Client) NewExperienceFormatter() formatters.Formatter {
	return formatters.NewExperienceFormatter(c, c.DefaultLanguage)
}

// Enhance asks the model to apply instruction to text. Blank text returns
// "" without calling the model. Failures are logged and reported in-band as
// ErrorText.
func (c *Client) Enhance(ctx context.Context, instruction, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out, err := c.generate(ctx, BuildPrompt(instruction, text))
	if err != nil {
		slog.Error("Error enhancing text with AI", "error", err)
		return ErrorText
	}
	return out
}

// BuildPrompt quotes the source text under the instruction.
func BuildPrompt(instruction, text string) string {
	return instruction + ":\n\n\"" + text + "\""
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}
	resp, err := c.llm.GenerateContent(ctx, msgs)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errEmptyOutput
	}
	out := strings.TrimSpace(resp.Choices[0].Content)
	if out == "" {
		return "", errEmptyOutput
	}
	return out, nil
}
