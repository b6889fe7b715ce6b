package engine

import (
	"context"
	"fmt"

	"github.com/okoshkin/tagsmith/internal/hash"
	"github.com/okoshkin/tagsmith/internal/model"
	"github.com/okoshkin/tagsmith/internal/worker"
)

// hashJob fingerprints one component's mesh
type hashJob struct {
	hasher *hash.Hasher
	idx    int
	path   string
}

// Execute executes the hash job
func (j *hashJob) Execute(ctx context.Context) worker.Result {
	fp, err := j.hasher.Fingerprint(ctx, j.path)
	return &hashResult{idx: j.idx, path: j.path, fp: fp, err: err}
}

// hashResult carries one component's fingerprint or failure
type hashResult struct {
	idx  int
	path string
	fp   model.Fingerprint
	err  error
}

// GetError returns the error from the hash result
func (r *hashResult) GetError() error {
	return r.err
}

// fingerprintComponents hashes all of the record's meshes as a
// concurrent fan-out. Successful fingerprints are attached to their
// components and recorded as filename observations even when a
// sibling fails; any failure aborts the composite.
func (e *Engine) fingerprintComponents(ctx context.Context, rec *model.Record, st *State) error {
	jobs := make([]worker.Job, len(rec.Components))
	for i, c := range rec.Components {
		jobs[i] = &hashJob{
			hasher: e.hasher,
			idx:    i,
			path:   e.host.ResolveMesh(c.MeshPath),
		}
	}

	results := worker.Run(ctx, e.cfg.Concurrency.HashWorkers, jobs)

	var failure error
	for _, res := range results {
		if res == nil {
			if failure == nil {
				failure = ctx.Err()
			}
			continue
		}
		hr := res.(*hashResult)
		if hr.err != nil {
			if failure == nil {
				failure = fmt.Errorf("hash %s: %w", rec.Components[hr.idx].MeshPath, hr.err)
			}
			continue
		}
		rec.Components[hr.idx].Fingerprint = hr.fp
		st.Memories.RecordName(hr.fp, rec.Components[hr.idx].MeshPath)
	}
	return failure
}
