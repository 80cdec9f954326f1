package huffpack

import (
	"reflect"
	"testing"
)

func TestCountFrequencies(t *testing.T) {
	freqs := CountFrequencies([]byte("aaaabbbcc"))
	expect := FrequencyTable{'a': 4, 'b': 3, 'c': 2}
	if !reflect.DeepEqual(expect, freqs) {
		t.Errorf("wrong frequencies:\n\texpect: %v\n\tactual: %v", expect, freqs)
	}
	if total := freqs.Total(); total != 9 {
		t.Errorf("expected total 9, got %d", total)
	}
	if symbols := freqs.Symbols(); !reflect.DeepEqual([]Symbol{'a', 'b', 'c'}, symbols) {
		t.Errorf("wrong symbols: %v", symbols)
	}
}

func TestCountFrequencies_Empty(t *testing.T) {
	freqs := CountFrequencies(nil)
	if len(freqs) != 0 {
		t.Errorf("expected empty table, got %v", freqs)
	}
	if total := freqs.Total(); total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
}

func TestFrequencyTable_Merge(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog")
	whole := CountFrequencies(input)

	for split := 0; split <= len(input); split += 7 {
		a := CountFrequencies(input[:split])
		b := CountFrequencies(input[split:])

		ab := FrequencyTable{}
		ab.Merge(a)
		ab.Merge(b)
		ba := FrequencyTable{}
		ba.Merge(b)
		ba.Merge(a)

		if !reflect.DeepEqual(whole, ab) || !reflect.DeepEqual(whole, ba) {
			t.Errorf("split %d: merged tables differ from whole-input table", split)
		}
	}
}
