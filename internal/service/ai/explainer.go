package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kapu/subtitle-vocab-go/internal/constants"
	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/kapu/subtitle-vocab-go/internal/prompt"
	"github.com/kapu/subtitle-vocab-go/pkg/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// VocabularyExplainer produces a memorisation explanation for one query.
type VocabularyExplainer interface {
	Explain(ctx context.Context, query domain.VocabularyQuery) (string, error)
}

// ExplainerConfig configures the chat client. Empty Model, non-positive
// MaxTokens and nil Temperature fall back to constants.ChatDefaults.
type ExplainerConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature *float64
	HTTPClient  *http.Client
}

// Explainer talks to an OpenAI-compatible chat completion endpoint
// (DeepSeek by default). Every call is a single POST; the SDK's own retries
// are switched off.
type Explainer struct {
	client      *openai.Client
	prompts     *prompt.PromptBuilder
	model       string
	maxTokens   int64
	temperature float64
	logger      *zap.Logger
}

func NewExplainer(cfg ExplainerConfig, logger *zap.Logger) *Explainer {
	if cfg.Model == "" {
		cfg.Model = constants.ChatDefaults.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = constants.ChatDefaults.MaxTokens
	}
	temperature := constants.ChatDefaults.Temperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("Accept", "application/json"),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := openai.NewClient(opts...)
	return &Explainer{
		client:      &client,
		prompts:     prompt.DefaultPromptBuilder(),
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: temperature,
		logger:      logger,
	}
}

func (e *Explainer) Model() string {
	return e.model
}

func (e *Explainer) Explain(ctx context.Context, query domain.VocabularyQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	msgs, err := e.prompts.BuildVocabulary(query)
	if err != nil {
		return "", fmt.Errorf("build vocabulary prompt: %w", err)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(msgs.System),
			openai.UserMessage(msgs.User),
		},
		FrequencyPenalty: openai.Float(constants.ChatDefaults.FrequencyPenalty),
		MaxTokens:        openai.Int(e.maxTokens),
		PresencePenalty:  openai.Float(constants.ChatDefaults.PresencePenalty),
		Temperature:      openai.Float(e.temperature),
		TopP:             openai.Float(constants.ChatDefaults.TopP),
		Logprobs:         openai.Bool(false),
	}

	start := time.Now()
	resp, err := e.client.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)
	if err != nil {
		var apiErr *openai.Error
		if stderrors.As(err, &apiErr) {
			wrapped := errors.NewAPIError(fmt.Sprintf("HTTP error! status: %d", apiErr.StatusCode), apiErr.StatusCode, map[string]any{
				"model": e.model,
			}).WithCause(err)
			e.logger.Error("Chat completion rejected",
				zap.Int("status", apiErr.StatusCode),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
			return "", wrapped
		}

		e.logger.Error("Chat completion failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		e.logger.Error("Chat completion returned no choices", zap.Duration("elapsed", elapsed))
		return "", errors.NewAPIError("no choices in chat completion response", 0, map[string]any{
			"model": e.model,
		})
	}

	answer := resp.Choices[0].Message.Content
	e.logger.Info("Explanation generated",
		zap.String("word", query.Word),
		zap.Duration("elapsed", elapsed),
		zap.Int("length", len(answer)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return answer, nil
}
