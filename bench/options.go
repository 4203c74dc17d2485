package bench

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/decode"
	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
	"github.com/arloliu/stringwrite/internal/options"
)

// DecodeFunc decodes one batch into a representation.
type DecodeFunc func(lengths []int32, values []byte, alloc memory.Allocator) (decode.Representation, error)

// BatchHook is called with every batch the harness generates, before it is decoded.
type BatchHook func(iteration int, b *corpus.Batch) error

type runConfig struct {
	logger    *slog.Logger
	alloc     memory.Allocator
	metrics   *Metrics
	batch     *corpus.Batch
	batchHook BatchHook
	decoders  map[format.Representation]DecodeFunc
}

// RunOption configures Run.
type RunOption = options.Option[*runConfig]

func defaultRunConfig() *runConfig {
	cfg := &runConfig{
		logger:   slog.New(slog.DiscardHandler),
		decoders: make(map[format.Representation]DecodeFunc, len(format.Representations)),
	}
	for _, kind := range format.Representations {
		cfg.decoders[kind] = builtinDecoder(kind)
	}

	return cfg
}

func builtinDecoder(kind format.Representation) DecodeFunc {
	return func(lengths []int32, values []byte, alloc memory.Allocator) (decode.Representation, error) {
		return decode.Decode(kind, lengths, values, alloc)
	}
}

// WithLogger sets the logger used for progress messages. The default discards everything.
func WithLogger(logger *slog.Logger) RunOption {
	return options.NoError(func(cfg *runConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithAllocator sets the Arrow allocator used by the columnar decoder.
func WithAllocator(mem memory.Allocator) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.alloc = mem
	})
}

// WithMetrics records decode timings, mismatches and batch sizes in m.
func WithMetrics(m *Metrics) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.metrics = m
	})
}

// WithBatch decodes b in every iteration instead of generating batches.
//
// A fixed batch is a reused batch: the columnar idempotence check applies.
func WithBatch(b *corpus.Batch) RunOption {
	return options.New(func(cfg *runConfig) error {
		if b == nil {
			return fmt.Errorf("%w: nil batch", errs.ErrInvalidArgument)
		}
		cfg.batch = b

		return nil
	})
}

// WithBatchHook calls hook with every generated batch. A hook error aborts the run.
func WithBatchHook(hook BatchHook) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.batchHook = hook
	})
}

// WithDecoder replaces the decoder used for kind.
func WithDecoder(kind format.Representation, fn DecodeFunc) RunOption {
	return options.New(func(cfg *runConfig) error {
		if _, ok := cfg.decoders[kind]; !ok {
			return fmt.Errorf("%w: unknown representation %s", errs.ErrInvalidArgument, kind)
		}
		if fn == nil {
			return fmt.Errorf("%w: nil decoder for %s", errs.ErrInvalidArgument, kind)
		}
		cfg.decoders[kind] = fn

		return nil
	})
}
