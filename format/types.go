package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/stringwrite/errs"
)

type (
	Representation  uint8
	CompressionType uint8
	PlatformType    uint8
)

const (
	ReprColumnar Representation = 0x1 // ReprColumnar is an offsets-plus-data string array.
	ReprTabular  Representation = 0x2 // ReprTabular is a labeled series of copied values.
	ReprList     Representation = 0x3 // ReprList is a plain list of independent byte strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	PlatformEcho PlatformType = 0x1 // PlatformEcho is the simulation platform.
	PlatformAWS  PlatformType = 0x2 // PlatformAWS is the AWS F1 FPGA platform.
)

// Representations lists every representation in reporting order.
var Representations = []Representation{ReprColumnar, ReprTabular, ReprList}

func (r Representation) String() string {
	switch r {
	case ReprColumnar:
		return "Arrow"
	case ReprTabular:
		return "Series"
	case ReprList:
		return "List"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (p PlatformType) String() string {
	switch p {
	case PlatformEcho:
		return "echo"
	case PlatformAWS:
		return "aws"
	default:
		return "unknown"
	}
}

// ParseCompression converts a case-insensitive codec name into a CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: unknown codec %q", errs.ErrInvalidArgument, name)
	}
}

// ParsePlatform converts a platform name into a PlatformType.
//
// Only "echo" and "aws" are accepted, matching the FPGA runtime's platform names.
func ParsePlatform(name string) (PlatformType, error) {
	switch name {
	case "echo":
		return PlatformEcho, nil
	case "aws":
		return PlatformAWS, nil
	default:
		return 0, fmt.Errorf("%w: unknown platform type %q (want echo or aws)", errs.ErrInvalidArgument, name)
	}
}
