package batchfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/stringwrite/compress"
	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/endian"
	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
	"github.com/arloliu/stringwrite/internal/hash"
	"github.com/arloliu/stringwrite/internal/pool"
)

const (
	// HeaderSize is the size of the fixed file header.
	HeaderSize = 28
	// Version is the only file version written and accepted.
	Version = 1
	// MaxCount is the largest string count a file may declare; it keeps the
	// length buffer within corpus.MaxBatchBytes.
	MaxCount = corpus.MaxBatchBytes / 4
)

var magic = [4]byte{'S', 'W', 'B', '1'}

// Header is the decoded fixed header of a batch file.
type Header struct {
	Version     uint8
	Compression format.CompressionType
	Count       uint32
	ValueBytes  uint32
	PayloadSize uint32
	Checksum    uint64
}

// RawSize returns the size of the uncompressed payload.
func (h Header) RawSize() int64 {
	return 4*int64(h.Count) + int64(h.ValueBytes)
}

func (h Header) append(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, magic[:]...)
	dst = append(dst, h.Version, byte(h.Compression), 0, 0)
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.ValueBytes)
	dst = engine.AppendUint32(dst, h.PayloadSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// ParseHeader decodes and validates the fixed header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrInvalidBatchFile, HeaderSize, len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidBatchFile, data[:4])
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		Version:     data[4],
		Compression: format.CompressionType(data[5]),
		Count:       engine.Uint32(data[8:]),
		ValueBytes:  engine.Uint32(data[12:]),
		PayloadSize: engine.Uint32(data[16:]),
		Checksum:    engine.Uint64(data[20:]),
	}

	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidBatchFile, h.Version)
	}
	if _, err := compress.GetCodec(h.Compression); err != nil {
		return Header{}, fmt.Errorf("%w: %w", errs.ErrInvalidBatchFile, err)
	}
	if int64(h.ValueBytes) > corpus.MaxBatchBytes {
		return Header{}, fmt.Errorf("%w: value buffer of %d bytes is too large", errs.ErrInvalidBatchFile, h.ValueBytes)
	}
	if h.Count > MaxCount {
		return Header{}, fmt.Errorf("%w: %d strings exceed the limit of %d", errs.ErrInvalidBatchFile, h.Count, MaxCount)
	}

	raw := h.RawSize()
	if h.Compression == format.CompressionNone && int64(h.PayloadSize) != raw {
		return Header{}, fmt.Errorf("%w: uncompressed payload size %d, expected %d", errs.ErrInvalidBatchFile, h.PayloadSize, raw)
	}
	// compressed payloads never exceed their raw size by much
	if int64(h.PayloadSize) > raw+raw/2+1024 {
		return Header{}, fmt.Errorf("%w: payload size %d is implausible for %d raw bytes",
			errs.ErrInvalidBatchFile, h.PayloadSize, raw)
	}

	return h, nil
}

// Marshal encodes b as a batch file compressed with ct.
func Marshal(b *corpus.Batch, ct format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw := pool.GetFileBuffer()
	defer pool.PutFileBuffer(raw)

	raw.Grow(4*b.Len() + b.Size())
	raw.B = endian.AppendLengths(endian.GetLittleEndianEngine(), raw.B, b.Lengths())
	raw.MustWrite(b.Values())

	packed, err := codec.Compress(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress batch payload: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: ct,
		Count:       uint32(b.Len()),
		ValueBytes:  uint32(b.Size()),
		PayloadSize: uint32(len(packed)),
		Checksum:    hash.Sum(raw.Bytes()),
	}

	out := make([]byte, 0, HeaderSize+len(packed))
	out = h.append(out)
	out = append(out, packed...)

	return out, nil
}

// Unmarshal decodes a batch file held in memory.
//
// Returns errs.ErrInvalidBatchFile for malformed files, errs.ErrChecksumMismatch when
// the payload is corrupted, and errs.ErrLengthValueMismatch if the decoded buffers
// violate the batch invariant.
func Unmarshal(data []byte) (*corpus.Batch, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[HeaderSize:]
	if int64(len(payload)) != int64(h.PayloadSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidBatchFile, len(payload), h.PayloadSize)
	}

	return decodePayload(h, payload)
}

func decodePayload(h Header, payload []byte) (*corpus.Batch, error) {
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload, int(h.RawSize()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBatchFile, err)
	}
	if hash.Sum(raw) != h.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	lengths, ok := endian.ReadLengths(endian.GetLittleEndianEngine(), raw, int(h.Count))
	if !ok {
		return nil, fmt.Errorf("%w: truncated length sequence", errs.ErrInvalidBatchFile)
	}
	values := raw[4*int(h.Count):]

	// the uncompressed payload may alias the input; the batch must own its values
	if h.Compression == format.CompressionNone {
		values = bytes.Clone(values)
	}

	return corpus.NewBatch(lengths, values)
}

// Write writes b to w as a batch file and returns the number of bytes written.
func Write(w io.Writer, b *corpus.Batch, ct format.CompressionType) (int64, error) {
	data, err := Marshal(b, ct)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)

	return int64(n), err
}

// Read reads one batch file from r.
func Read(r io.Reader) (*corpus.Batch, error) {
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", errs.ErrInvalidBatchFile, err)
	}
	h, err := ParseHeader(head)
	if err != nil {
		return nil, err
	}

	// grows with the bytes actually read rather than the declared size
	payload, err := io.ReadAll(io.LimitReader(r, int64(h.PayloadSize)))
	if err != nil {
		return nil, fmt.Errorf("%w: read payload: %w", errs.ErrInvalidBatchFile, err)
	}
	if len(payload) != int(h.PayloadSize) {
		return nil, fmt.Errorf("%w: read payload: got %d of %d bytes", errs.ErrInvalidBatchFile, len(payload), h.PayloadSize)
	}

	return decodePayload(h, payload)
}

// Save writes b to the file at path, replacing any existing file.
func Save(path string, b *corpus.Batch, ct format.CompressionType) error {
	data, err := Marshal(b, ct)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write batch file: %w", err)
	}

	return nil
}

// Load reads the batch file at path.
func Load(path string) (*corpus.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	return Read(f)
}
