package bench

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/decode"
	"github.com/arloliu/stringwrite/endian"
	"github.com/arloliu/stringwrite/format"
)

// PrintReport writes the human-readable report of r to w: a run header, one
// block per iteration, the aggregate timing lines, and a final PASS or
// ERROR (<n> errors) line.
func PrintReport(w io.Writer, r *Report) error {
	var sb strings.Builder

	cfg := r.Config
	fmt.Fprintf(&sb, "Run %s\n", r.RunID)
	fmt.Fprintf(&sb, "  Platform:     %s\n", cfg.Platform)
	fmt.Fprintf(&sb, "  Experiments:  %d\n", cfg.NumExperiments)
	fmt.Fprintf(&sb, "  Strings:      %d\n", cfg.NumStrings)
	fmt.Fprintf(&sb, "  Min length:   %d\n", cfg.MinLen)
	fmt.Fprintf(&sb, "  Length mask:  %d\n", cfg.LenMask)
	fmt.Fprintf(&sb, "  Reuse batch:  %t\n", cfg.ReuseBatch)
	fmt.Fprintf(&sb, "  Disable GC:   %t\n", cfg.DisableGC)
	sb.WriteString("\n")

	for _, it := range r.Iterations {
		fmt.Fprintf(&sb, "Iteration %d: %d strings, %s\n", it.Index, it.NumStrings, formatBytes(it.BatchBytes))
		for _, kind := range format.Representations {
			fmt.Fprintf(&sb, "  %-8s %s\n", kind, formatSeconds(it.Durations[kind]))
		}
		if it.Err != nil {
			fmt.Fprintf(&sb, "  mismatch: %v\n", it.Err)
		}
	}
	sb.WriteString("\n")

	writeSummary(&sb, r)
	sb.WriteString(Verdict(r))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

// Verdict returns "PASS" or "ERROR (<n> errors)".
func Verdict(r *Report) string {
	if r.Passed() {
		return "PASS"
	}

	return fmt.Sprintf("ERROR (%d errors)", r.Errors)
}

// WriteSummary writes only the aggregate timing lines of r to w.
func WriteSummary(w io.Writer, r *Report) error {
	var sb strings.Builder
	writeSummary(&sb, r)
	_, err := io.WriteString(w, sb.String())

	return err
}

// SaveSummary writes the aggregate timing lines of r to the file at path.
func SaveSummary(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}

	if err := WriteSummary(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write summary file: %w", err)
	}

	return f.Close()
}

func writeSummary(sb *strings.Builder, r *Report) {
	for _, kind := range format.Representations {
		fmt.Fprintf(sb, "Total %-8s %s\n", kind.String()+":", formatSeconds(r.Total(kind)))
	}
	for _, kind := range format.Representations {
		fmt.Fprintf(sb, "Average %-8s %s\n", kind.String()+":", formatSeconds(r.Average(kind)))
	}
}

// PrintBatch dumps the raw buffers of b, their sizes and the columnar buffer sizes to w.
func PrintBatch(w io.Writer, b *corpus.Batch) error {
	var sb strings.Builder

	raw := endian.AppendLengths(endian.GetLittleEndianEngine(), nil, b.Lengths())
	var sum int64
	for _, l := range b.Lengths() {
		sum += int64(l)
	}

	fmt.Fprintf(&sb, "lengths: %q\n", raw)
	fmt.Fprintf(&sb, "values:  %q\n", b.Values())
	fmt.Fprintf(&sb, "sum(lengths): %d\n", sum)
	fmt.Fprintf(&sb, "len(values):  %d\n", len(b.Values()))

	col, err := decode.Columnar(b.Lengths(), b.Values())
	if err != nil {
		return err
	}
	defer col.Release()

	buffers := col.Arrow().Data().Buffers()
	fmt.Fprintf(&sb, "columnar: %s\n", col.Arrow())
	fmt.Fprintf(&sb, "offsets buffer: %d bytes\n", buffers[1].Len())
	fmt.Fprintf(&sb, "data buffer:    %d bytes\n", buffers[2].Len())

	_, err = io.WriteString(w, sb.String())

	return err
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f s", d.Seconds())
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
