package bits

import "testing"

func TestUint16Uint32(t *testing.T) {
	if got := Uint16([]byte{0x34, 0x12}); got != 0x1234 {
		t.Errorf("Uint16 = %#x, want 0x1234", got)
	}
	if got := Uint32([]byte{0x78, 0x56, 0x34, 0x12}); got != 0x12345678 {
		t.Errorf("Uint32 = %#x, want 0x12345678", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("HELLO"), "HELLO"},
		{"trailing spaces", []byte("HELLO   "), "HELLO"},
		{"high bit padding", append([]byte("HELLO"), 0xA0, 0xA0, 0xA0), "HELLO"},
		{"high bit letters", []byte{'H' | 0x80, 'I'}, "HI"},
		{"all whitespace", []byte("   "), ""},
		{"empty", []byte{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][]byte{
		[]byte("HELLO   "),
		append([]byte("GAME"), 0xA0, 0xA0),
		[]byte("  leading and trailing  "),
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize([]byte(once))
		if once != twice {
			t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
		}
	}
}

func TestTrimAtEndOfName(t *testing.T) {
	raw := append([]byte("HELLO"), 0xA0, 0xA0, 0xA0, 'X')
	got := TrimAtEndOfName(raw)
	if string(got) != "HELLO" {
		t.Errorf("TrimAtEndOfName = %q, want %q", got, "HELLO")
	}
}

func TestRoman(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"X", 10},
		{"XVII", 17},
		{"L", 50},
		{"C", 100},
		{"MCMXCIX", 0}, // out of guaranteed range (M unrecognized); must not panic
	}
	for _, tt := range tests {
		if got := Roman(tt.in); tt.in != "MCMXCIX" && got != tt.want {
			t.Errorf("Roman(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRomanNoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Roman panicked: %v", r)
		}
	}()
	Roman("MCMXCIX")
	Roman("")
	Roman("???")
}
