package aes128

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// State is one block laid out column-major: row r, column c lives at r+4c.
type State [BlockSize]byte

var mixMatrix = [4][4]byte{
	{0x02, 0x03, 0x01, 0x01},
	{0x01, 0x02, 0x03, 0x01},
	{0x01, 0x01, 0x02, 0x03},
	{0x03, 0x01, 0x01, 0x02},
}

// AddRoundKey XORs the round key into the state.
func AddRoundKey(s *State, rk *[BlockSize]byte) {
	for i := range s {
		s[i] ^= rk[i]
	}
}

// SubBytes replaces every byte of the state through the S-box.
func SubBytes(s *State) {
	for i := range s {
		s[i] = Substitute(s[i])
	}
}

// ShiftRows rotates row r of the state left by r positions.
func ShiftRows(s *State) {
	for r := 1; r < 4; r++ {
		var row [4]byte
		for c := 0; c < 4; c++ {
			row[c] = s[r+4*((c+r)%4)]
		}
		for c := 0; c < 4; c++ {
			s[r+4*c] = row[c]
		}
	}
}

// MixColumns returns a new state. Every output byte of a column depends on
// all four input bytes of that column, so it cannot run in place.
func MixColumns(s State) State {
	var out State
	for c := 0; c < 4; c++ {
		for k := 0; k < 4; k++ {
			var v byte
			for j := 0; j < 4; j++ {
				v ^= Multiply(mixMatrix[k][j], s[j+4*c])
			}
			out[k+4*c] = v
		}
	}
	return out
}

// EncryptBlock runs the full round pipeline over s using ks.
// The final round skips MixColumns.
func EncryptBlock(s *State, ks *Schedule) {
	AddRoundKey(s, &ks[0])
	for round := 1; round < Rounds; round++ {
		SubBytes(s)
		ShiftRows(s)
		*s = MixColumns(*s)
		AddRoundKey(s, &ks[round])
	}
	SubBytes(s)
	ShiftRows(s)
	AddRoundKey(s, &ks[Rounds])
}
