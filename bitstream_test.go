package huffpack

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	input := []byte("aaaabbbcc")
	root := BuildTree(CountFrequencies(input))
	codes := DeriveCodes(root)

	packed, bitCount, err := Encode(input, codes)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if bitCount != 14 {
		t.Errorf("expected 14 bits, got %d", bitCount)
	}
	expectPacked := []byte{0x0f, 0xe8}
	if !bytes.Equal(expectPacked, packed) {
		t.Errorf("wrong packed bits:\n\texpect: %#v\n\tactual: %#v", expectPacked, packed)
	}

	actual, err := Decode(packed, bitCount, root)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
	}
}

func TestEncode_Single(t *testing.T) {
	input := []byte("zzzz")
	root := BuildTree(CountFrequencies(input))

	packed, bitCount, err := Encode(input, DeriveCodes(root))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if bitCount != 4 || !bytes.Equal([]byte{0x00}, packed) {
		t.Errorf("expected ([0x00], 4), got (%#v, %d)", packed, bitCount)
	}

	actual, err := Decode(packed, bitCount, root)
	if err != nil || string(actual) != "zzzz" {
		t.Errorf("expected \"zzzz\", got %q, %v", actual, err)
	}
}

func TestEncode_Empty(t *testing.T) {
	packed, bitCount, err := Encode(nil, CodeTable{})
	if err != nil || bitCount != 0 || len(packed) != 0 {
		t.Errorf("expected no output, got %#v, %d, %v", packed, bitCount, err)
	}

	actual, err := Decode(nil, 0, nil)
	if err != nil || len(actual) != 0 {
		t.Errorf("expected no output, got %q, %v", actual, err)
	}
}

func TestEncode_UnknownSymbol(t *testing.T) {
	codes := DeriveCodes(BuildTree(CountFrequencies([]byte("ab"))))

	_, _, err := Encode([]byte("abx"), codes)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	var unknown *UnknownSymbolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownSymbolError, got %T", err)
	}
	if unknown.Symbol != 'x' || unknown.Offset != 2 {
		t.Errorf("expected 'x' at offset 2, got %s at offset %d", unknown.Symbol, unknown.Offset)
	}
}

func TestEncode_LongCodes(t *testing.T) {
	freqs := fibonacciFrequencies(90)
	root := BuildTree(freqs)
	codes := DeriveCodes(root)
	if maxSize := codes.MaxSize(); maxSize != 89 {
		t.Fatalf("expected longest code of 89 bits, got %d", maxSize)
	}

	input := make([]byte, 0, 3*len(freqs))
	for round := 0; round < 3; round++ {
		for symbol := len(freqs) - 1; symbol >= 0; symbol-- {
			input = append(input, byte(symbol))
		}
	}

	packed, bitCount, err := Encode(input, codes)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := 3 * codes.BitLength(CountFrequencies(input[:len(freqs)])); bitCount != expect {
		t.Errorf("expected %d bits, got %d", expect, bitCount)
	}

	actual, err := Decode(packed, bitCount, root)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("tree decode did not round trip")
	}

	var d Decoder
	if err := d.Init(codes); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	actual, err = d.DecodeBits(packed, bitCount)
	if err != nil {
		t.Fatalf("DecodeBits failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("table decode did not round trip")
	}
}

func TestDecode_Errors(t *testing.T) {
	root := BuildTree(CountFrequencies([]byte("aaaabbbcc")))
	halfTree := NewInternal(NewLeaf('a', 1), nil)

	type testRow struct {
		name     string
		packed   []byte
		bitCount uint64
		root     *Node
		expect   error
	}

	testData := [...]testRow{
		{"ends-inside-code", []byte{0x0f, 0xe8}, 13, root, ErrTruncatedStream},
		{"short-packed", []byte{0x0f}, 14, root, ErrTruncatedStream},
		{"no-packed", nil, 1, root, ErrTruncatedStream},
		{"missing-child", []byte{0x80}, 1, halfTree, ErrCorruptTree},
		{"nil-tree", []byte{0x00}, 1, nil, ErrCorruptTree},
		{"lone-leaf-one-bit", []byte{0x80}, 1, NewLeaf('z', 1), ErrCorruptTree},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := Decode(row.packed, row.bitCount, row.root)
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}
}
