package bench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/decode"
	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
)

func TestRun_EndToEndPass(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	report, err := Run(context.Background(), DefaultConfig(), WithAllocator(mem))
	require.NoError(t, err)
	require.Len(t, report.Iterations, 4)
	require.True(t, report.Passed())
	require.NoError(t, report.Err())
	require.NotEqual(t, uuid.Nil, report.RunID)

	for i, it := range report.Iterations {
		require.Equal(t, i, it.Index)
		require.Equal(t, 6000, it.NumStrings)
		require.NoError(t, it.Err)
		require.Len(t, it.Durations, len(format.Representations))
	}

	var out bytes.Buffer
	require.NoError(t, PrintReport(&out, report))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "PASS", lines[len(lines)-1])
}

func TestRun_FreshBatchPerIteration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStrings = 200

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, report.Passed())
	require.NotEqual(t, report.Iterations[0].Fingerprint, report.Iterations[1].Fingerprint)
}

func TestRun_ReuseBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStrings = 200
	cfg.ReuseBatch = true
	cfg.DisableGC = true

	var hookCalls int
	report, err := Run(context.Background(), cfg, WithBatchHook(func(int, *corpus.Batch) error {
		hookCalls++
		return nil
	}))
	require.NoError(t, err)
	require.True(t, report.Passed())
	require.Equal(t, 1, hookCalls)

	for _, it := range report.Iterations[1:] {
		require.Equal(t, report.Iterations[0].Fingerprint, it.Fingerprint)
	}
}

func TestRun_LFSR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStrings = 300
	cfg.LFSR = true

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, report.Passed())
}

func TestRun_WithBatch(t *testing.T) {
	b, err := corpus.NewBatch([]int32{2, 0, 3}, []byte("ABXYZ"))
	require.NoError(t, err)

	var seen []string
	check := func(lengths []int32, values []byte, alloc memory.Allocator) (decode.Representation, error) {
		rep, err := decode.List(lengths, values)
		if err == nil {
			seen = decode.Strings(rep)
		}

		return rep, err
	}

	cfg := DefaultConfig()
	cfg.NumExperiments = 2
	report, err := Run(context.Background(), cfg, WithBatch(b), WithDecoder(format.ReprList, check))
	require.NoError(t, err)
	require.True(t, report.Passed())
	require.Equal(t, []string{"AB", "", "XYZ"}, seen)
	require.Equal(t, 3, report.Iterations[1].NumStrings)
	require.Equal(t, 5, report.Iterations[1].BatchBytes)
}

func TestRun_WithBatchReportsItsSize(t *testing.T) {
	b, err := corpus.NewBatch([]int32{2, 0, 3}, []byte("ABXYZ"))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.NumExperiments = 1
	report, err := Run(context.Background(), cfg, WithBatch(b))
	require.NoError(t, err)
	require.Equal(t, 3, report.Config.NumStrings)

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, report))
	require.Contains(t, buf.String(), "  Strings:      3\n")
}

func TestRun_MismatchesAreCounted(t *testing.T) {
	var calls int
	faulty := func(lengths []int32, values []byte, _ memory.Allocator) (decode.Representation, error) {
		calls++
		list, err := decode.List(lengths, values)
		if err != nil {
			return nil, err
		}
		if calls%2 == 0 && len(list) > 0 {
			list[0] = append([]byte("corrupt"), list[0]...)
		}

		return list, nil
	}

	cfg := DefaultConfig()
	cfg.NumStrings = 100
	report, err := Run(context.Background(), cfg, WithDecoder(format.ReprList, faulty))
	require.NoError(t, err)
	require.Len(t, report.Iterations, 4)
	require.Equal(t, 2, report.Errors)
	require.False(t, report.Passed())
	require.ErrorIs(t, report.Err(), errs.ErrRepresentationMismatch)
	require.ErrorIs(t, report.Iterations[1].Err, errs.ErrRepresentationMismatch)
	require.NoError(t, report.Iterations[2].Err)
	require.Equal(t, "ERROR (2 errors)", Verdict(report))
}

func TestRun_ColumnarDriftOnReusedBatch(t *testing.T) {
	other, err := corpus.NewBatch([]int32{2, 0, 3}, []byte("ABXYQ"))
	require.NoError(t, err)

	// every decoder switches to a different batch from the second call on, so the
	// representations still agree with each other
	drifting := func(kind format.Representation) DecodeFunc {
		var calls int
		return func(lengths []int32, values []byte, alloc memory.Allocator) (decode.Representation, error) {
			calls++
			if calls > 1 {
				lengths, values = other.Lengths(), other.Values()
			}

			return decode.Decode(kind, lengths, values, alloc)
		}
	}

	b, err := corpus.NewBatch([]int32{2, 0, 3}, []byte("ABXYZ"))
	require.NoError(t, err)

	opts := []RunOption{WithBatch(b)}
	for _, kind := range format.Representations {
		opts = append(opts, WithDecoder(kind, drifting(kind)))
	}

	cfg := DefaultConfig()
	cfg.NumExperiments = 3
	report, err := Run(context.Background(), cfg, opts...)
	require.NoError(t, err)
	require.Equal(t, 2, report.Errors)
	require.NoError(t, report.Iterations[0].Err)
	require.ErrorIs(t, report.Iterations[1].Err, errs.ErrRepresentationMismatch)
	require.Contains(t, report.Iterations[1].Err.Error(), "first iteration")
}

func TestRun_DecodeErrorIsFatal(t *testing.T) {
	errBoom := errors.New("boom")
	broken := func([]int32, []byte, memory.Allocator) (decode.Representation, error) {
		return nil, errBoom
	}

	report, err := Run(context.Background(), DefaultConfig(), WithDecoder(format.ReprTabular, broken))
	require.ErrorIs(t, err, errBoom)
	require.NotNil(t, report)
	require.Empty(t, report.Iterations)
}

func TestRun_DecoderWithoutRepresentation(t *testing.T) {
	tests := []struct {
		name string
		kind format.Representation
	}{
		{name: "columnar", kind: format.ReprColumnar},
		{name: "tabular", kind: format.ReprTabular},
		{name: "list", kind: format.ReprList},
	}

	empty := func([]int32, []byte, memory.Allocator) (decode.Representation, error) {
		return nil, nil
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report *Report
			var err error
			require.NotPanics(t, func() {
				report, err = Run(context.Background(), DefaultConfig(), WithDecoder(tt.kind, empty))
			})
			require.ErrorIs(t, err, errs.ErrInvalidArgument)
			require.NotNil(t, report)
			require.Empty(t, report.Iterations)
		})
	}
}

func TestRun_BatchHookErrorAborts(t *testing.T) {
	errHook := errors.New("hook")
	report, err := Run(context.Background(), DefaultConfig(), WithBatchHook(func(i int, _ *corpus.Batch) error {
		if i == 1 {
			return errHook
		}
		return nil
	}))
	require.ErrorIs(t, err, errHook)
	require.Len(t, report.Iterations, 1)
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Iterations)
}

func TestRun_InvalidArguments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStrings = -1
	_, err := Run(context.Background(), cfg)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Run(context.Background(), DefaultConfig(), WithBatch(nil))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Run(context.Background(), DefaultConfig(), WithDecoder(format.Representation(0), nil))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRun_ZeroStrings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStrings = 0

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, report.Passed())
	for _, it := range report.Iterations {
		require.Zero(t, it.NumStrings)
		require.Zero(t, it.BatchBytes)
	}
}

func TestRun_Metrics(t *testing.T) {
	m := NewMetrics()
	cfg := DefaultConfig()
	cfg.NumStrings = 100

	_, err := Run(context.Background(), cfg, WithMetrics(m))
	require.NoError(t, err)

	require.InDelta(t, 4, testutil.ToFloat64(m.iterations), 0)
	require.InDelta(t, 0, testutil.ToFloat64(m.mismatches), 0)
	require.Equal(t, len(format.Representations), testutil.CollectAndCount(m.decodeDuration))
	require.InDelta(t, 4, testutil.ToFloat64(m.decodesTotal.WithLabelValues(format.ReprList.String())), 0)
	require.InDelta(t, 100, testutil.ToFloat64(m.batchStrings), 0)

	path := filepath.Join(t.TempDir(), "stringwrite.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "stringwrite_decode_duration_seconds_bucket")
	require.Contains(t, string(content), `representation="Arrow"`)
}
