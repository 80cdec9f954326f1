package huffpack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code a Code can hold.  A tree over NumSymbols
// leaves is never deeper than NumSymbols-1, so this bound is never reached by
// a well-formed tree.
const MaxCodeSize = 255

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Bit i of the sequence is
	// bit (i % 64) of Bits[i / 64], so the least significant bit of
	// Bits[0] is the first bit.  Bits beyond Size are always zero.
	Bits [4]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The least significant bit of bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "MakeCode size %d > 64", size)
	var hc Code
	hc.Size = size
	if size < 64 {
		bits &= (uint64(1) << size) - 1
	}
	hc.Bits[0] = bits
	return hc
}

// ParseCode constructs a Code from a string of '0' and '1' characters, first
// bit first.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is too long: %d bits, max %d", str, len(str), MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", str[i], str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of this Code.
func (hc Code) Bit(i byte) uint {
	assert.Assertf(i < hc.Size, "bit index %d out of range for code of size %d", i, hc.Size)
	return uint(hc.Bits[i/64]>>(i%64)) & 1
}

// Append returns the Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code size %d would exceed %d", hc.Size, MaxCodeSize)
	i := hc.Size
	hc.Bits[i/64] |= uint64(bit&1) << (i % 64)
	hc.Size++
	return hc
}

// Truncate returns the first size bits of this Code.
func (hc Code) Truncate(size byte) Code {
	if size >= hc.Size {
		return hc
	}
	var out Code
	for i := byte(0); i < size; i++ {
		out = out.Append(hc.Bit(i))
	}
	return out
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code is
// a prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	return prefix.Size <= hc.Size && hc.Truncate(prefix.Size) == prefix
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		buf.WriteByte(byte('0' + hc.Bit(i)))
	}
	return strconv.Quote(buf.String())
}

var _ fmt.Stringer = Code{}
