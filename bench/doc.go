// Package bench runs the string materialization benchmark.
//
// Each iteration decodes one corpus batch into every representation in
// format.Representations, timing each decode separately, and then checks that:
//
//   - all representations hold the same ordered sequence of strings, and
//   - when the batch is reused across iterations, the columnar decode is
//     bit-identical to the one produced by the first iteration.
//
// Failed checks are recorded per iteration and counted in the Report; they do
// not stop the run. Invalid batches and decode failures do.
//
// Basic usage:
//
//	report, err := bench.Run(ctx, bench.DefaultConfig(), bench.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	bench.PrintReport(os.Stdout, report)
//	if !report.Passed() {
//		os.Exit(1)
//	}
package bench
