// Package batchfile reads and writes corpus batches in their raw two-buffer encoding.
//
// A batch file is a fixed 28-byte little-endian header followed by the payload:
//
//	offset  size  field
//	0       4     magic "SWB1"
//	4       1     version (1)
//	5       1     compression (format.CompressionType)
//	6       2     reserved, zero
//	8       4     count: number of strings
//	12      4     valueBytes: size of the value buffer
//	16      4     payloadSize: size of the stored payload
//	20      8     checksum: xxHash64 of the uncompressed payload
//	28      ...   payload: compress(lengths as int32 × count || values)
//
// Files let a benchmark run against a fixed corpus, or hand a corpus to another tool.
package batchfile
