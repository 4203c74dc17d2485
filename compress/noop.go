package compress

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a NoOpCompressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking its size.
func (c NoOpCompressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if err := checkSize("none", len(data), rawSize); err != nil {
		return nil, err
	}

	return data, nil
}
