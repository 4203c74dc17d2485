package bench

import (
	"fmt"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
)

// Config describes one benchmark run.
type Config struct {
	// NumExperiments is the number of timed iterations.
	NumExperiments int
	// NumStrings is the number of strings per batch.
	NumStrings int
	// MinLen is the minimum string length.
	MinLen int
	// LenMask is the bitmask applied to a random byte to bound lengths above MinLen.
	LenMask int
	// Platform is reported with the results; decoding does not depend on it.
	Platform format.PlatformType
	// ReuseBatch generates one batch and decodes it in every iteration.
	ReuseBatch bool
	// DisableGC suspends garbage collection inside timed regions.
	DisableGC bool
	// Seed seeds the corpus generator. Iteration i uses Seed+i unless the batch is reused.
	Seed uint64
	// LFSR selects the 8-bit LFSR corpus source instead of the PRNG.
	LFSR bool
}

// DefaultConfig returns the configuration used by the command line tool when no flags are given.
func DefaultConfig() Config {
	return Config{
		NumExperiments: 4,
		NumStrings:     6000,
		MinLen:         0,
		LenMask:        255,
		Platform:       format.PlatformEcho,
		Seed:           42,
	}
}

// Validate reports whether c describes a runnable benchmark.
func (c Config) Validate() error {
	switch {
	case c.NumExperiments < 1:
		return fmt.Errorf("%w: num_exp must be positive, got %d", errs.ErrInvalidArgument, c.NumExperiments)
	case c.NumStrings < 0:
		return fmt.Errorf("%w: num_strings must not be negative, got %d", errs.ErrInvalidArgument, c.NumStrings)
	case c.MinLen < 0:
		return fmt.Errorf("%w: min_len must not be negative, got %d", errs.ErrInvalidArgument, c.MinLen)
	case c.LenMask < 0:
		return fmt.Errorf("%w: len_msk must not be negative, got %d", errs.ErrInvalidArgument, c.LenMask)
	}

	if c.Platform != format.PlatformEcho && c.Platform != format.PlatformAWS {
		return fmt.Errorf("%w: unknown platform %s", errs.ErrInvalidArgument, c.Platform)
	}

	return nil
}
