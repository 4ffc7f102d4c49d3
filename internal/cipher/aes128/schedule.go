package aes128

const (
	// KeySize is the cipher key length in bytes.
	KeySize = 16
	// Rounds is the number of full rounds for a 128-bit key.
	Rounds = 10
)

// Key is a raw 128-bit cipher key.
type Key [KeySize]byte

// Schedule holds the round keys 0..Rounds. Round key 0 is the cipher key.
type Schedule [Rounds + 1][BlockSize]byte

// Index 0 is never used; the round index starts at 1.
var rcon = [Rounds + 1]byte{0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// Expand derives the round key schedule for key.
func Expand(key Key) Schedule {
	var ks Schedule
	ks[0] = key
	for m := 1; m <= Rounds; m++ {
		prev := &ks[m-1]
		word := coreWord([4]byte{prev[12], prev[13], prev[14], prev[15]}, m)
		for i := 0; i < 4; i++ {
			ks[m][i] = prev[i] ^ word[i]
		}
		for i := 4; i < BlockSize; i++ {
			ks[m][i] = prev[i] ^ ks[m][i-4]
		}
	}
	return ks
}

// coreWord rotates w left by one byte, substitutes every byte and folds the
// round constant into the first byte.
func coreWord(w [4]byte, round int) [4]byte {
	w = [4]byte{w[1], w[2], w[3], w[0]}
	for i := range w {
		w[i] = Substitute(w[i])
	}
	w[0] ^= rcon[round]
	return w
}
