// Package compress provides the codecs used to compress batch file payloads.
//
// Supported algorithms, selected by format.CompressionType:
//   - None: payload stored as-is
//   - Zstd: best ratio; klauspost/compress by default, valyala/gozstd (cgo) when
//     built with the gozstd tag
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Batch values are printable ASCII and compress well; lengths compress a little.
//
// Decompress takes the expected decompressed size, which the batch file header
// records, so every codec can allocate its output once:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	packed, _ := codec.Compress(payload)
//	raw, err := codec.Decompress(packed, len(payload))
//
// All codecs in this package are safe for concurrent use.
package compress
