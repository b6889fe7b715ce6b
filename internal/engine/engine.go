// Package engine orchestrates tag inference: for each composite
// record it hashes the component meshes, consults remembered
// judgments, applies or skips keywords automatically where memory is
// conclusive, and escalates the rest to the oracle in one question
// round per record.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/okoshkin/tagsmith/internal/hash"
	"github.com/okoshkin/tagsmith/internal/host"
	"github.com/okoshkin/tagsmith/internal/memory"
	"github.com/okoshkin/tagsmith/internal/model"
	"github.com/okoshkin/tagsmith/internal/oracle"
	"github.com/okoshkin/tagsmith/internal/policy"
	"github.com/okoshkin/tagsmith/internal/worker"
)

// ErrCancelled signals a user-initiated abort of the current
// composite. It never fails the run; processing continues with the
// next record.
var ErrCancelled = errors.New("cancelled by user")

// Engine processes composite records one at a time to completion
type Engine struct {
	cfg       *model.Config
	host      host.Host
	hasher    *hash.Hasher
	prompter  oracle.Prompter
	suggester oracle.Suggester
	keywords  []model.KeywordInfo
}

// State is the per-run mutable state threaded through processing.
// One value per run, passed explicitly, never captured in closures.
type State struct {
	Memories memory.Memories

	Processed int // composites fully processed
	Tagged    int // keywords applied
	Asked     int // questions put to the oracle
	Failed    int // composites skipped on resource failure
	Cancelled int // composites aborted by the user
}

// New creates an engine. The keyword catalog is resolved eagerly so
// configuration mistakes surface before any record is touched.
func New(cfg *model.Config, h host.Host, prompter oracle.Prompter, suggester oracle.Suggester) (*Engine, error) {
	catalog, err := model.LoadCatalog(cfg.Keywords.CatalogPath)
	if err != nil {
		return nil, err
	}
	active, err := catalog.Select(cfg.Keywords.Active)
	if err != nil {
		return nil, err
	}

	limiter := worker.NewReadLimiter(cfg.Concurrency.MaxReadBytesPerSec)

	return &Engine{
		cfg:       cfg,
		host:      h,
		hasher:    hash.New(limiter),
		prompter:  prompter,
		suggester: suggester,
		keywords:  active,
	}, nil
}

// Keywords returns the active keyword descriptors
func (e *Engine) Keywords() []model.KeywordInfo {
	return e.keywords
}

// Initialize loads the memory snapshot and builds the run state
func (e *Engine) Initialize() (*State, error) {
	return &State{
		Memories: memory.Load(e.cfg.Memory.Path),
	}, nil
}

// ShouldConsider reports whether the record takes part in the run at
// all. Variant fits (creature races and the like) are excluded.
func (e *Engine) ShouldConsider(rec *model.Record) bool {
	return !e.host.IsVariant(rec)
}

// Finalize persists the memory snapshot one last time
func (e *Engine) Finalize(st *State) error {
	return memory.Save(e.cfg.Memory.Path, st.Memories)
}

// Run processes every considerable record of the given kind. Failures
// and cancellations abort single composites only.
func (e *Engine) Run(ctx context.Context, kind string, st *State) error {
	records, err := e.host.Records(ctx, kind)
	if err != nil {
		return fmt.Errorf("enumerate records: %w", err)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.ShouldConsider(rec) {
			continue
		}
		if err := e.Process(ctx, rec, st); err != nil {
			if errors.Is(err, ErrCancelled) {
				st.Cancelled++
				e.host.Logf("%s: cancelled, moving on", rec.Name)
				continue
			}
			return err
		}
	}
	return nil
}

// Process evaluates one composite to completion: hashing, automatic
// verdicts, the question round, learning, and the durable memory
// flush. A hash failure skips the composite (logged, run continues);
// only ErrCancelled and genuine run-level failures propagate.
func (e *Engine) Process(ctx context.Context, rec *model.Record, st *State) error {
	candidates := policy.Candidates(rec, e.keywords)
	if len(candidates) == 0 {
		return nil
	}

	if err := e.fingerprintComponents(ctx, rec, st); err != nil {
		// Filename observations gathered before the failure are
		// already in the store; keep them durable.
		st.Failed++
		e.host.Logf("%s: %v, skipping", rec.Name, err)
		return memory.Save(e.cfg.Memory.Path, st.Memories)
	}

	var questions []question
	for _, kw := range candidates {
		relevant := policy.RelevantIndices(rec.Components, kw)
		answers := e.relevantAnswers(st.Memories, rec.Components, relevant, kw)

		switch policy.Decide(kw.Kind, answers) {
		case policy.VerdictApply:
			if err := e.applyKeyword(rec, kw.ID, st); err != nil {
				return err
			}
		case policy.VerdictSkip:
			if e.cfg.Output.Verbose {
				e.host.Logf("%s: %s conclusively absent", rec.Name, kw.ID)
			}
		case policy.VerdictAsk:
			questions = append(questions, question{keyword: kw, relevant: relevant})
		}
	}

	if len(questions) > 0 {
		if err := e.resolveQuestions(ctx, rec, questions, st); err != nil {
			return err
		}
	}

	st.Processed++
	if err := memory.Save(e.cfg.Memory.Path, st.Memories); err != nil {
		return fmt.Errorf("persist memory after %s: %w", rec.Name, err)
	}
	return nil
}

// applyKeyword ensures the tag definition exists and adds it to the
// record
func (e *Engine) applyKeyword(rec *model.Record, id string, st *State) error {
	if err := e.host.EnsureKeyword(id); err != nil {
		return fmt.Errorf("ensure keyword %s: %w", id, err)
	}
	if err := e.host.ApplyKeyword(rec, id); err != nil {
		return fmt.Errorf("apply %s to %s: %w", id, rec.Name, err)
	}
	st.Tagged++
	e.host.Logf("%s: applied %s", rec.Name, id)
	return nil
}

// relevantAnswers builds the normalized answer subsequence for the
// relevant components
func (e *Engine) relevantAnswers(mem memory.Memories, components []model.Component, relevant []int, kw model.KeywordInfo) []model.Answer {
	answers := make([]model.Answer, 0, len(relevant))
	for _, i := range relevant {
		stored := mem.Answer(components[i].Fingerprint, kw.ID)
		answers = append(answers, model.Normalize(stored, e.cfg.Keywords.RedoMaybes))
	}
	return answers
}
