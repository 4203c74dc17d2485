package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// s2MaxRatio bounds the expansion of an S2 block: the longest repeat op emits
// a little over 1<<24 bytes from 5 bytes of input.
const s2MaxRatio = 1 << 22

type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2Compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data with S2 block encoding.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (c S2Compressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize("s2", 0, rawSize)
	}

	if int64(rawSize) > int64(len(data))*s2MaxRatio {
		return nil, fmt.Errorf("s2 decompression failed: %d bytes cannot expand to %d", len(data), rawSize)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if err := checkSize("s2", n, rawSize); err != nil {
		return nil, err
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
