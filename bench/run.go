package bench

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/decode"
	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
	"github.com/arloliu/stringwrite/internal/options"
)

// IterationResult holds the outcome of one benchmark iteration.
type IterationResult struct {
	// Index is the zero-based iteration number.
	Index int
	// NumStrings and BatchBytes describe the decoded batch.
	NumStrings int
	BatchBytes int
	// Fingerprint is the xxHash64 sequence fingerprint of the decoded strings.
	Fingerprint uint64
	// Durations holds the decode time of each representation.
	Durations map[format.Representation]time.Duration
	// Err is non-nil if a check failed; it wraps errs.ErrRepresentationMismatch.
	Err error
}

// Report is the result of a benchmark run.
type Report struct {
	RunID      uuid.UUID
	Config     Config
	StartedAt  time.Time
	Elapsed    time.Duration
	Iterations []IterationResult
	// Errors is the number of iterations that failed a check.
	Errors int
}

// Total returns the summed decode time of kind over all iterations.
func (r *Report) Total(kind format.Representation) time.Duration {
	var total time.Duration
	for _, it := range r.Iterations {
		total += it.Durations[kind]
	}

	return total
}

// Average returns the mean decode time of kind, or zero if no iteration completed.
func (r *Report) Average(kind format.Representation) time.Duration {
	if len(r.Iterations) == 0 {
		return 0
	}

	return r.Total(kind) / time.Duration(len(r.Iterations))
}

// Passed reports whether every iteration passed both checks.
func (r *Report) Passed() bool {
	return r.Errors == 0
}

// Err returns nil if the run passed, or an error wrapping errs.ErrRepresentationMismatch.
func (r *Report) Err() error {
	if r.Passed() {
		return nil
	}

	return fmt.Errorf("%w: %d of %d iterations failed", errs.ErrRepresentationMismatch, r.Errors, len(r.Iterations))
}

// columnarSnapshot keeps the first columnar decode of a reused batch.
type columnarSnapshot struct {
	offsets     []int32
	data        []byte
	fingerprint uint64
}

func takeSnapshot(r decode.Representation) *columnarSnapshot {
	snap := &columnarSnapshot{fingerprint: decode.Fingerprint(r)}
	if col, ok := r.(*decode.ColumnarArray); ok {
		snap.offsets = slices.Clone(col.Offsets())
		snap.data = bytes.Clone(col.Data())
	}

	return snap
}

func (s *columnarSnapshot) matches(r decode.Representation) bool {
	if decode.Fingerprint(r) != s.fingerprint {
		return false
	}
	col, ok := r.(*decode.ColumnarArray)
	if !ok {
		return true
	}

	return slices.Equal(col.Offsets(), s.offsets) && bytes.Equal(col.Data(), s.data)
}

type harness struct {
	cfg      Config
	run      *runConfig
	reuse    bool
	batch    *corpus.Batch
	baseline *columnarSnapshot
}

// Run executes cfg.NumExperiments benchmark iterations.
//
// Failed equivalence checks are recorded in the Report and do not make Run fail;
// use Report.Passed or Report.Err. Run returns an error for an invalid
// configuration, a batch that violates the length/value invariant, a decoder
// error, a failed batch hook, or when ctx is done. ctx is checked between
// iterations; the partial Report is returned along with ctx's error.
func Run(ctx context.Context, cfg Config, opts ...RunOption) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := defaultRunConfig()
	if err := options.Apply(rc, opts...); err != nil {
		return nil, err
	}
	if rc.batch != nil {
		cfg.NumStrings = rc.batch.Len()
	}

	h := &harness{
		cfg:   cfg,
		run:   rc,
		reuse: cfg.ReuseBatch || rc.batch != nil,
		batch: rc.batch,
	}

	report := &Report{
		RunID:      uuid.New(),
		Config:     cfg,
		StartedAt:  time.Now(),
		Iterations: make([]IterationResult, 0, cfg.NumExperiments),
	}

	rc.logger.Info("benchmark started",
		"run_id", report.RunID,
		"platform", cfg.Platform,
		"num_exp", cfg.NumExperiments,
		"num_strings", cfg.NumStrings,
		"min_len", cfg.MinLen,
		"len_msk", cfg.LenMask,
		"reuse_batch", h.reuse,
		"disable_gc", cfg.DisableGC)

	for i := range cfg.NumExperiments {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(report.StartedAt)
			return report, err
		}

		batch, err := h.nextBatch(i)
		if err != nil {
			return report, err
		}

		res, err := h.iterate(i, batch)
		if err != nil {
			return report, fmt.Errorf("iteration %d: %w", i, err)
		}

		if res.Err != nil {
			report.Errors++
			rc.logger.Warn("iteration failed", "iteration", i, "error", res.Err)
		}
		if rc.metrics != nil {
			rc.metrics.ObserveIteration(res.NumStrings, res.BatchBytes, res.Err != nil)
		}
		report.Iterations = append(report.Iterations, res)
	}

	report.Elapsed = time.Since(report.StartedAt)
	rc.logger.Info("benchmark finished", "run_id", report.RunID, "errors", report.Errors, "elapsed", report.Elapsed)

	return report, nil
}

func (h *harness) nextBatch(i int) (*corpus.Batch, error) {
	if h.reuse && h.batch != nil {
		return h.batch, nil
	}

	seed := h.cfg.Seed
	if !h.reuse {
		seed += uint64(i) //nolint:gosec
	}

	opts := []corpus.GenerateOption{corpus.WithSeed(seed)}
	if h.cfg.LFSR {
		opts = append(opts, corpus.WithLFSR())
	}

	b, err := corpus.Generate(h.cfg.NumStrings, h.cfg.MinLen, h.cfg.LenMask, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}
	h.run.logger.Debug("batch generated", "iteration", i, "strings", b.Len(), "bytes", b.Size(), "seed", seed)

	if h.run.batchHook != nil {
		if err := h.run.batchHook(i, b); err != nil {
			return nil, fmt.Errorf("batch hook: %w", err)
		}
	}

	if h.reuse {
		h.batch = b
	}

	return b, nil
}

func (h *harness) iterate(i int, b *corpus.Batch) (IterationResult, error) {
	lengths, values := b.Lengths(), b.Values()

	// checked before any decoder runs
	if err := corpus.Validate(lengths, values); err != nil {
		return IterationResult{}, err
	}

	res := IterationResult{
		Index:      i,
		NumStrings: b.Len(),
		BatchBytes: b.Size(),
		Durations:  make(map[format.Representation]time.Duration, len(format.Representations)),
	}

	reps := make([]decode.Representation, 0, len(format.Representations))
	defer func() {
		for _, r := range reps {
			r.Release()
		}
	}()

	for _, kind := range format.Representations {
		decodeFn := h.run.decoders[kind]

		var rep decode.Representation
		elapsed, err := Measure(h.cfg.DisableGC, func() error {
			var err error
			rep, err = decodeFn(lengths, values, h.run.alloc)

			return err
		})
		if err != nil {
			return IterationResult{}, fmt.Errorf("decode %s: %w", kind, err)
		}
		if rep == nil {
			return IterationResult{}, fmt.Errorf("%w: %s decoder returned no representation", errs.ErrInvalidArgument, kind)
		}

		reps = append(reps, rep)
		res.Durations[kind] = elapsed
		if h.run.metrics != nil {
			h.run.metrics.ObserveDecode(kind, elapsed)
		}
		h.run.logger.Debug("decoded", "iteration", i, "representation", kind, "elapsed", elapsed)
	}

	ref := reps[0]
	res.Fingerprint = decode.Fingerprint(ref)

	for _, rep := range reps[1:] {
		if idx := decode.FirstDifference(ref, rep); idx >= 0 {
			res.Err = fmt.Errorf("%w: %s differs from %s at string %d",
				errs.ErrRepresentationMismatch, rep.Kind(), ref.Kind(), idx)

			break
		}
	}

	if h.reuse {
		columnar := reps[slices.Index(format.Representations, format.ReprColumnar)]
		switch {
		case h.baseline == nil:
			h.baseline = takeSnapshot(columnar)
		case !h.baseline.matches(columnar) && res.Err == nil:
			res.Err = fmt.Errorf("%w: %s decode of the reused batch differs from the first iteration",
				errs.ErrRepresentationMismatch, columnar.Kind())
		}
	}

	return res, nil
}
