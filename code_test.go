package huffpack

import (
	"testing"
)

func mustParseCode(str string) Code {
	hc, err := ParseCode(str)
	if err != nil {
		panic(err)
	}
	return hc
}

func TestCode_String(t *testing.T) {
	type testRow struct {
		hc     Code
		expect string
	}

	testData := [...]testRow{
		{Code{}, `""`},
		{MakeCode(1, 0), `"0"`},
		{MakeCode(1, 1), `"1"`},
		{MakeCode(3, 0x1), `"100"`},
		{MakeCode(4, 0xe), `"0111"`},
		{mustParseCode("0110"), `"0110"`},
	}
	for _, row := range testData {
		if actual := row.hc.String(); actual != row.expect {
			t.Errorf("expected %s, got %s", row.expect, actual)
		}
	}
}

func TestCode_Long(t *testing.T) {
	var hc Code
	for i := 0; i < 200; i++ {
		hc = hc.Append(uint(i % 3 & 1))
	}
	if hc.Size != 200 {
		t.Fatalf("expected size 200, got %d", hc.Size)
	}
	for i := 0; i < 200; i++ {
		if expect, actual := uint(i%3&1), hc.Bit(byte(i)); expect != actual {
			t.Errorf("bit %d: expected %d, got %d", i, expect, actual)
		}
	}

	prefix := hc.Truncate(130)
	if !hc.HasPrefix(prefix) {
		t.Errorf("expected %s to have prefix %s", hc, prefix)
	}
	if prefix.HasPrefix(hc) {
		t.Errorf("expected %s not to have prefix %s", prefix, hc)
	}
	if reparsed := mustParseCode(hc.String()[1 : 1+200]); reparsed != hc {
		t.Errorf("ParseCode(String()) did not round trip")
	}
}

func TestCode_HasPrefix(t *testing.T) {
	type testRow struct {
		hc, prefix string
		expect     bool
	}

	testData := [...]testRow{
		{"", "", true},
		{"0", "", true},
		{"0", "0", true},
		{"0", "1", false},
		{"10", "1", true},
		{"10", "11", false},
		{"1", "10", false},
	}
	for _, row := range testData {
		actual := mustParseCode(row.hc).HasPrefix(mustParseCode(row.prefix))
		if actual != row.expect {
			t.Errorf("%q.HasPrefix(%q): expected %v, got %v", row.hc, row.prefix, row.expect, actual)
		}
	}
}

func TestParseCode_Invalid(t *testing.T) {
	if _, err := ParseCode("012"); err == nil {
		t.Errorf("expected error for invalid character")
	}
	long := make([]byte, MaxCodeSize+1)
	for i := range long {
		long[i] = '1'
	}
	if _, err := ParseCode(string(long)); err == nil {
		t.Errorf("expected error for overlong code")
	}
}
