package compress

import (
	"fmt"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
)

// Compressor compresses a payload.
//
// The returned slice is owned by the caller unless documented otherwise. The input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// rawSize is the expected decompressed size; implementations use it to size their
// output and report an error when the result does not match it.
type Decompressor interface {
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidArgument, compressionType)
}

func checkSize(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: decompressed %d bytes, expected %d", name, got, want)
	}

	return nil
}
