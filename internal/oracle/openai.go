package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/okoshkin/tagsmith/internal/model"
)

// Suggester proposes a provisional answer for one keyword question so
// routine cases need no human attention. Suggestions are always
// Maybe-grade: a definite Yes/No can only come from a person, and the
// redo_maybes setting forces re-confirmation of every machine
// judgment.
type Suggester interface {
	// Name returns the provider name
	Name() string

	// Suggest returns AnswerMaybeYes, AnswerMaybeNo, or AnswerUnknown
	// when the model declines to judge
	Suggest(ctx context.Context, kw model.KeywordInfo, filenames []string) (model.Answer, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NewSuggester builds the configured suggester, or nil when disabled
func NewSuggester(cfg model.LLMConfig) (Suggester, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return newOpenAISuggester(cfg)
	}
	return nil, fmt.Errorf("unknown suggester provider %q", cfg.Provider)
}

// openAISuggester implements Suggester on the OpenAI Chat Completions API
type openAISuggester struct {
	client *openai.Client
	config model.LLMConfig
}

func newOpenAISuggester(cfg model.LLMConfig) (*openAISuggester, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAISuggester{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name
func (s *openAISuggester) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (s *openAISuggester) IsAvailable(ctx context.Context) bool {
	_, err := s.client.ListModels(ctx)
	return err == nil
}

// Suggest asks the model to judge the keyword from the observed
// filenames alone. The model never sees mesh geometry, so anything it
// says is provisional by construction.
func (s *openAISuggester) Suggest(ctx context.Context, kw model.KeywordInfo, filenames []string) (model.Answer, error) {
	mdl := s.config.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:     mdl,
		MaxTokens: 5,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildSuggestPrompt(kw, filenames),
			},
		},
	})
	if err != nil {
		return model.AnswerUnknown, fmt.Errorf("suggest %s: %w", kw.ID, err)
	}
	if len(resp.Choices) == 0 {
		return model.AnswerUnknown, fmt.Errorf("suggest %s: empty response", kw.ID)
	}

	return parseSuggestion(resp.Choices[0].Message.Content), nil
}

// buildSuggestPrompt constructs the yes/no question for the model
func buildSuggestPrompt(kw model.KeywordInfo, filenames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You judge game armor mesh files by their filenames only.\n")
	fmt.Fprintf(&b, "Property: %s\n", kw.Description)
	fmt.Fprintf(&b, "Known filenames for this mesh:\n")
	for i, name := range filenames {
		if i >= 20 { // limit to avoid token bloat
			fmt.Fprintf(&b, "... and %d more\n", len(filenames)-20)
			break
		}
		fmt.Fprintf(&b, "- %s\n", name)
	}
	fmt.Fprintf(&b, "\nDoes the mesh likely have this property? Answer with exactly one word: yes, no, or unsure.")
	return b.String()
}

// parseSuggestion maps the model's word to a provisional answer
func parseSuggestion(content string) model.Answer {
	switch strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(content), "."))) {
	case "yes":
		return model.AnswerMaybeYes
	case "no":
		return model.AnswerMaybeNo
	}
	return model.AnswerUnknown
}
