package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression.
//
// It is backed by klauspost/compress/zstd unless the module is built with the
// gozstd tag and cgo enabled, in which case valyala/gozstd is used. Both produce
// standard zstd frames, so files written by one can be read by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a ZstdCompressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdMaxBlockSize is the largest amount of output one zstd block can produce.
// Every block takes at least 4 bytes of input (an RLE block), which bounds the
// output of any frame by its input size.
const zstdMaxBlockSize = 128 << 10

// zstdOutputCap returns the capacity to preallocate for decoding data into rawSize bytes.
//
// rawSize must be reachable from len(data) bytes of blocks, and a frame that
// declares its content size must declare exactly rawSize. Both are checked
// before any output is allocated. Frames without a declared size get a
// capacity bounded by the input size and grow while decoding.
func zstdOutputCap(data []byte, rawSize int) (int, error) {
	if int64(rawSize) > (int64(len(data))/4+1)*zstdMaxBlockSize {
		return 0, fmt.Errorf("zstd decompression failed: %d bytes cannot expand to %d", len(data), rawSize)
	}

	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return 0, fmt.Errorf("zstd decompression failed: %w", err)
	}

	if !h.HasFCS {
		return min(rawSize, 4*len(data)), nil
	}
	if h.FrameContentSize != uint64(rawSize) { //nolint:gosec
		return 0, fmt.Errorf("zstd: frame declares %d bytes, expected %d", h.FrameContentSize, rawSize)
	}

	return rawSize, nil
}
