package huffpack

import (
	"fmt"
	"math"
)

// Symbol represents a symbol in the byte alphabet.  Every byte value is a
// valid Symbol.
type Symbol byte

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint8)

// NumSymbols is the size of the alphabet.
const NumSymbols = int(MaxSymbol) + 1

// String returns the Go character literal for this Symbol, e.g. 'a' or '\x00'.
func (s Symbol) String() string {
	return fmt.Sprintf("%q", byte(s))
}

var _ fmt.Stringer = Symbol(0)
