package aes128

// Multiply returns the product of a and b in GF(2^8) reduced by
// x^8 + x^4 + x^3 + x + 1.
func Multiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		b >>= 1
		carry := a&0x80 != 0
		a <<= 1
		if carry {
			a ^= 0x1b
		}
	}
	return p
}
