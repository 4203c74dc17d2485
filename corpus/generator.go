package corpus

import (
	"fmt"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/internal/options"
)

// DefaultSeed is the seed used by Generate when WithSeed is not given.
const DefaultSeed = 42

type generateConfig struct {
	seed uint64
	lfsr bool
}

// GenerateOption configures Generate.
type GenerateOption = options.Option[*generateConfig]

// WithSeed sets the seed of the pseudo-random source.
// In LFSR mode the low byte of seed is the initial state of the length register.
func WithSeed(seed uint64) GenerateOption {
	return options.NoError(func(c *generateConfig) {
		c.seed = seed
	})
}

// WithLFSR switches Generate to hardware-style LFSR sources.
func WithLFSR() GenerateOption {
	return options.NoError(func(c *generateConfig) {
		c.lfsr = true
	})
}

// Generate creates a random batch of numStrings strings.
//
// The length of each string is minLen + (randomByte & lenMask). Value bytes are
// printable ASCII characters appended in generation order.
//
// Parameters:
//   - numStrings: number of strings, may be zero
//   - minLen: minimum string length
//   - lenMask: mask applied to the random length byte
//
// Returns:
//   - *Batch: the generated batch, satisfying sum(lengths) == len(values)
//   - error: errs.ErrInvalidArgument for negative inputs or a batch larger than MaxBatchBytes
func Generate(numStrings, minLen, lenMask int, opts ...GenerateOption) (*Batch, error) {
	if numStrings < 0 {
		return nil, fmt.Errorf("%w: num_strings %d is negative", errs.ErrInvalidArgument, numStrings)
	}
	if minLen < 0 {
		return nil, fmt.Errorf("%w: min_len %d is negative", errs.ErrInvalidArgument, minLen)
	}
	if lenMask < 0 {
		return nil, fmt.Errorf("%w: len_msk %d is negative", errs.ErrInvalidArgument, lenMask)
	}
	if int64(numStrings)*int64(minLen) > MaxBatchBytes {
		return nil, fmt.Errorf("%w: %d strings of at least %d bytes exceed %d bytes",
			errs.ErrInvalidArgument, numStrings, minLen, MaxBatchBytes)
	}

	cfg := &generateConfig{seed: DefaultSeed}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var (
		lengthSrc ByteSource
		fill      func(dst []byte)
	)
	if cfg.lfsr {
		state := uint8(cfg.seed) //nolint:gosec
		if state == 0 {
			state = 1
		}
		lengthSrc = NewLFSR(state)
		fill = newLFSRLines().fill
	} else {
		// lengths and values draw from independent streams
		lengthSrc = NewPRNG(cfg.seed)
		valueSrc := NewPRNG(cfg.seed + 1)
		fill = func(dst []byte) {
			for i := range dst {
				dst[i] = printable(valueSrc.NextByte())
			}
		}
	}

	mask := byte(lenMask & 0xff)
	b := newBuilder(numStrings)
	defer b.Release()

	for range numStrings {
		n := minLen + int(lengthSrc.NextByte()&mask)
		if err := b.appendFill(n, fill); err != nil {
			return nil, err
		}
	}

	return b.Finish(), nil
}
