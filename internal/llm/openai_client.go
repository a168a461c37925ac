// ABOUTME: OpenAI client for embeddings and streamed chat completions
// ABOUTME: Uses text-embedding-3-small and gpt-4o-mini by default (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string // optional, for compatible APIs and tests
	ChatModel      string
	EmbeddingModel string
	MaxTokens      int
	Temperature    float32
}

// Client wraps the OpenAI API for the two calls this pipeline makes:
// embedding text and streaming a completion. Calls are not retried;
// service errors propagate to the caller unmodified.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	maxTokens      int
	temperature    float32
}

// NewClient creates a new OpenAI client from the given configuration
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:         openai.NewClientWithConfig(apiCfg),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
	}, nil
}

// EmbedQuery generates the embedding vector for a single query string
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments generates one embedding per input text in a single
// API call, preserving input order
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// StreamCompletion sends the prompt to the chat model and returns a
// live token stream. A connection failure is returned directly and no
// stream is created; once streaming has begun, a model error aborts
// the stream carrying that error.
func (c *Client) StreamCompletion(ctx context.Context, prompt string) (*TokenStream, error) {
	apiStream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("starting completion stream: %w", err)
	}

	stream := NewTokenStream()
	go func() {
		defer apiStream.Close()
		for {
			resp, err := apiStream.Recv()
			if errors.Is(err, io.EOF) {
				stream.Close()
				return
			}
			if err != nil {
				stream.Abort(fmt.Errorf("receiving completion token: %w", err))
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if token := resp.Choices[0].Delta.Content; token != "" {
				stream.Push(token)
			}
		}
	}()
	return stream, nil
}
