package aes128

import "testing"

func TestSubstitute(t *testing.T) {
	tests := []struct{ in, want byte }{
		{0x00, 0x63},
		{0x01, 0x7c},
		{0x53, 0xed},
		{0x19, 0xd4},
		{0xff, 0x16},
	}
	for _, tt := range tests {
		if got := Substitute(tt.in); got != tt.want {
			t.Errorf("Substitute(%#02x) = %#02x, want %#02x", tt.in, got, tt.want)
		}
	}
}

func TestSubstituteIsPermutation(t *testing.T) {
	var seen [256]bool
	for i := 0; i < 256; i++ {
		v := Substitute(byte(i))
		if seen[v] {
			t.Fatalf("S-box output %#02x repeated", v)
		}
		seen[v] = true
	}
}
