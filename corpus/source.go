package corpus

import "math/rand/v2"

// ByteSource produces a stream of pseudo-random bytes.
type ByteSource interface {
	NextByte() byte
}

// PRNG is a ByteSource backed by a seeded PCG generator.
// It hands out the eight bytes of each 64-bit draw before drawing again.
type PRNG struct {
	rng  *rand.Rand
	word uint64
	left int
}

var _ ByteSource = (*PRNG)(nil)

// NewPRNG creates a PRNG source. Equal seeds produce equal streams.
func NewPRNG(seed uint64) *PRNG {
	return &PRNG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextByte returns the next pseudo-random byte.
func (p *PRNG) NextByte() byte {
	if p.left == 0 {
		p.word = p.rng.Uint64()
		p.left = 8
	}
	b := byte(p.word)
	p.word >>= 8
	p.left--

	return b
}

// LFSR is an 8-bit Fibonacci linear-feedback shift register with the maximal-length
// polynomial x^8 + x^6 + x^5 + x^4 + 1. From any non-zero state it cycles through
// all 255 non-zero states. The zero state is a fixed point.
type LFSR struct {
	state uint8
}

var _ ByteSource = (*LFSR)(nil)

// NewLFSR creates a register in the given state.
func NewLFSR(state uint8) *LFSR {
	return &LFSR{state: state}
}

// NextByte steps the register once and returns the new state.
func (l *LFSR) NextByte() byte {
	s := l.state
	bit := (s ^ (s >> 2) ^ (s >> 3) ^ (s >> 4)) & 1
	l.state = (s >> 1) | (bit << 7)

	return l.state
}

// State returns the current register state.
func (l *LFSR) State() uint8 {
	return l.state
}

// lineWidth is the number of LFSR lanes that produce one line of characters.
const lineWidth = 64

// lfsrLines produces value bytes one 64-byte line at a time, one LFSR per lane,
// the way the hardware string writer does. Lane i starts in state i, so lane 0
// sits in the zero fixed point and column 0 of every line is '.'.
type lfsrLines struct {
	lanes [lineWidth]LFSR
	line  [lineWidth]byte
}

func newLFSRLines() *lfsrLines {
	l := &lfsrLines{}
	for i := range l.lanes {
		l.lanes[i].state = uint8(i) //nolint:gosec
	}

	return l
}

// next advances every lane and returns the new line of printable characters.
func (l *lfsrLines) next() []byte {
	for i := range l.lanes {
		l.line[i] = printable(l.lanes[i].NextByte())
	}

	return l.line[:]
}

// fill writes len(dst) characters. Each string starts on a fresh line, and a
// zero-length string still consumes one line.
func (l *lfsrLines) fill(dst []byte) {
	pos := 0
	for {
		pos += copy(dst[pos:], l.next())
		if pos >= len(dst) {
			return
		}
	}
}

// printable maps a random byte to 7-bit ASCII, replacing control characters and DEL with '.'.
func printable(b byte) byte {
	b &= 127
	if b < 32 || b == 127 {
		return '.'
	}

	return b
}
