// Package corpus builds and validates batches of variable-length byte strings.
//
// A Batch is the two-buffer encoding every decoder consumes: a sequence of int32
// lengths and one contiguous value buffer holding all strings back to back. The
// central invariant, checked by Validate, is
//
//	sum(lengths) == len(values)
//
// Batches come from two places:
//   - Generate draws a random corpus with mask-bounded lengths
//   - NewBatch wraps existing buffers after validating them
//
// # Length distribution
//
// Generate draws each length as minLen + (randomByte & lenMask). The mask is applied
// to an 8-bit random value, so only the low 8 bits of lenMask matter, and a mask that
// is not of the form 2^k-1 produces a non-uniform distribution. This is intended:
// results stay comparable with the hardware string writer, which uses the same rule.
package corpus
