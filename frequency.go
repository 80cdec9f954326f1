package huffpack

import (
	"sort"
)

// FrequencyTable maps each Symbol to the number of times it occurs.  Symbols
// that do not occur are absent.
type FrequencyTable map[Symbol]uint64

// CountFrequencies counts the occurrences of each byte in data.  Empty input
// yields an empty table.
func CountFrequencies(data []byte) FrequencyTable {
	var counts [NumSymbols]uint64
	for _, b := range data {
		counts[b]++
	}

	freqs := make(FrequencyTable)
	for symbol, count := range counts {
		if count != 0 {
			freqs[Symbol(symbol)] = count
		}
	}
	return freqs
}

// Merge adds the counts of other into this table, summing by Symbol.  The
// result does not depend on the order in which partial tables are merged.
func (freqs FrequencyTable) Merge(other FrequencyTable) {
	for symbol, count := range other {
		freqs[symbol] = saturatingAdd(freqs[symbol], count)
	}
}

// Symbols returns the Symbols with a non-zero count, in ascending order.
func (freqs FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(freqs))
	for symbol, count := range freqs {
		if count != 0 {
			out = append(out, symbol)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total returns the sum of all counts, saturating at math.MaxUint64.
func (freqs FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range freqs {
		sum = saturatingAdd(sum, count)
	}
	return sum
}
