package oracle

import (
	"context"
	"strings"
	"testing"

	"github.com/okoshkin/tagsmith/internal/model"
)

func TestTerminalPrompter_ReturnsChosenIndex(t *testing.T) {
	in := strings.NewReader("3\n")
	var out strings.Builder
	p := NewTerminalPrompter(in, &out)

	idx, err := p.Prompt(context.Background(), "Is IronCuirass revealing?", []string{"Yes", "Maybe yes", "Maybe no", "No", "Cancel"})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if idx != 2 {
		t.Errorf("index = %d, want 2", idx)
	}
	if !strings.Contains(out.String(), "Is IronCuirass revealing?") {
		t.Error("message not shown")
	}
	if !strings.Contains(out.String(), "[4] No") {
		t.Error("buttons not numbered from 1")
	}
}

func TestTerminalPrompter_RejectsInvalidInput(t *testing.T) {
	in := strings.NewReader("0\nseven\n9\n2\n")
	var out strings.Builder
	p := NewTerminalPrompter(in, &out)

	idx, err := p.Prompt(context.Background(), "q", []string{"a", "b"})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}
}

func TestTerminalPrompter_EOF(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), &strings.Builder{})
	if _, err := p.Prompt(context.Background(), "q", []string{"a"}); err == nil {
		t.Error("expected error on EOF")
	}
}

func TestNewSuggester(t *testing.T) {
	s, err := NewSuggester(model.LLMConfig{})
	if err != nil || s != nil {
		t.Errorf("empty provider: got (%v, %v), want (nil, nil)", s, err)
	}

	if _, err := NewSuggester(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}

	if _, err := NewSuggester(model.LLMConfig{Provider: "delphi"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	s, err = NewSuggester(model.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil || s.Name() != "openai" {
		t.Errorf("expected openai suggester, got %v", s)
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		content string
		want    model.Answer
	}{
		{"yes", model.AnswerMaybeYes},
		{"Yes.", model.AnswerMaybeYes},
		{" NO\n", model.AnswerMaybeNo},
		{"unsure", model.AnswerUnknown},
		{"it depends on the texture", model.AnswerUnknown},
		{"", model.AnswerUnknown},
	}
	for _, tt := range tests {
		if got := parseSuggestion(tt.content); got != tt.want {
			t.Errorf("parseSuggestion(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestBuildSuggestPrompt_LimitsFilenames(t *testing.T) {
	kw := model.KeywordInfo{ID: "K", Description: "test property"}
	names := make([]string, 30)
	for i := range names {
		names[i] = "mesh.nif"
	}
	prompt := buildSuggestPrompt(kw, names)
	if !strings.Contains(prompt, "... and 10 more") {
		t.Error("long filename lists must be truncated")
	}
	if !strings.Contains(prompt, "test property") {
		t.Error("keyword description missing from prompt")
	}
}

func TestLaunchViewer_NoProgram(t *testing.T) {
	if _, err := LaunchViewer("", "", nil); err == nil {
		t.Error("expected error without viewer program")
	}
}

func TestLaunchViewer_ResolvesOnExit(t *testing.T) {
	done, err := LaunchViewer("/bin/true", "", nil)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("viewer exit: %v", err)
	}
}
