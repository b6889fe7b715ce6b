package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okoshkin/tagsmith/internal/learn"
	"github.com/okoshkin/tagsmith/internal/memory"
	"github.com/okoshkin/tagsmith/internal/model"
	"github.com/okoshkin/tagsmith/internal/oracle"
)

// question is one unresolved keyword for the current composite
type question struct {
	keyword  model.KeywordInfo
	relevant []int
}

// outcome is the oracle's verdict on one question
type outcome struct {
	answer    model.Answer
	cancelled bool
	err       error
}

// answerButtons is the fixed ordered button set for keyword questions
var answerButtons = []string{"Yes", "Maybe yes", "Maybe no", "No", "Cancel"}

// answerForButton maps a button index to its judgment; the last button
// is Cancel
var answerForButton = []model.Answer{
	model.AnswerYes,
	model.AnswerMaybeYes,
	model.AnswerMaybeNo,
	model.AnswerNo,
}

// resolveQuestions runs the single question round for the composite:
// all questions are issued as a concurrent batch, the viewer (if
// configured) is launched alongside and awaited separately, and the
// engine suspends until every answer is in. Any Cancel aborts the
// whole composite before a single answer is learned or applied.
func (e *Engine) resolveQuestions(ctx context.Context, rec *model.Record, questions []question, st *State) error {
	viewerDone := e.launchViewer(rec)

	outcomes := make([]outcome, len(questions))
	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		go func(idx int, q question) {
			defer wg.Done()
			outcomes[idx] = e.askOne(ctx, rec, q, st)
		}(i, q)
	}
	wg.Wait()
	st.Asked += len(questions)

	if viewerDone != nil {
		if err := <-viewerDone; err != nil {
			e.host.Logf("viewer exited with error: %v", err)
		}
	}

	for _, o := range outcomes {
		if o.err != nil {
			return fmt.Errorf("ask about %s: %w", rec.Name, o.err)
		}
		if o.cancelled {
			return ErrCancelled
		}
	}

	for i, o := range outcomes {
		q := questions[i]
		applied := learn.Propagate(st.Memories, rec.Components, q.keyword, q.relevant, o.answer, e.cfg.Keywords.RedoMaybes)
		if applied {
			if err := e.applyKeyword(rec, q.keyword.ID, st); err != nil {
				return err
			}
		}
	}
	return nil
}

// askOne resolves a single question: the suggester first when one is
// configured, the prompter otherwise
func (e *Engine) askOne(ctx context.Context, rec *model.Record, q question, st *State) outcome {
	if e.suggester != nil {
		names := e.relevantFilenames(rec, q, st.Memories)
		ans, err := e.suggester.Suggest(ctx, q.keyword, names)
		if err != nil {
			e.host.Logf("%s: suggester failed for %s: %v", rec.Name, q.keyword.ID, err)
		} else if ans != model.AnswerUnknown {
			if e.cfg.Output.Verbose {
				e.host.Logf("%s: %s suggested %v for %s", rec.Name, e.suggester.Name(), ans, q.keyword.ID)
			}
			return outcome{answer: ans}
		}
	}

	idx, err := e.prompter.Prompt(ctx, e.questionMessage(rec, q), answerButtons)
	if err != nil {
		return outcome{err: err}
	}
	if idx < 0 || idx >= len(answerButtons) {
		return outcome{err: fmt.Errorf("prompter returned button %d of %d", idx, len(answerButtons))}
	}
	if idx == len(answerButtons)-1 {
		return outcome{cancelled: true}
	}
	return outcome{answer: answerForButton[idx]}
}

// questionMessage builds the prompt shown for one keyword question
func (e *Engine) questionMessage(rec *model.Record, q question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — does %q hold?", rec.Name, q.keyword.Description)
	fmt.Fprintf(&b, "\nkeyword: %s (%s)", q.keyword.ID, q.keyword.Kind)
	for _, i := range q.relevant {
		c := rec.Components[i]
		fmt.Fprintf(&b, "\n  %s: %s [%s]", c.Name, c.MeshPath, c.Slots)
	}
	return b.String()
}

// relevantFilenames collects every name memory has seen for the
// question's relevant meshes, current paths included
func (e *Engine) relevantFilenames(rec *model.Record, q question, mem memory.Memories) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, i := range q.relevant {
		c := rec.Components[i]
		add(c.MeshPath)
		if entry, ok := mem[c.Fingerprint]; ok {
			for _, name := range entry.Filenames {
				add(name)
			}
		}
	}
	return names
}

// launchViewer starts the external viewer on the record's meshes,
// returning its exit channel, or nil when no viewer is configured or
// it fails to start
func (e *Engine) launchViewer(rec *model.Record) <-chan error {
	if e.cfg.Viewer.Program == "" {
		return nil
	}
	files := make([]string, 0, len(rec.Components))
	for _, c := range rec.Components {
		files = append(files, e.host.ResolveMesh(c.MeshPath))
	}
	done, err := oracle.LaunchViewer(e.cfg.Viewer.Program, e.cfg.Viewer.WorkDir, files)
	if err != nil {
		e.host.Logf("%s: %v", rec.Name, err)
		return nil
	}
	return done
}
