package huffpack

import (
	"math"
	mathbits "math/bits"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := mathbits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// packedLen returns the number of bytes needed to hold bitCount bits.
func packedLen(bitCount uint64) uint64 {
	return bitCount/8 + uint64(bitCount%8+7)/8
}
