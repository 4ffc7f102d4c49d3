// Package aes128 implements the AES-128 forward cipher: key expansion and the
// round pipeline over a single 16-byte block. There is no decryption path.
package aes128

// Cipher encrypts single blocks with a schedule expanded once in New.
// It is safe for concurrent use; the schedule is never written after New.
type Cipher struct {
	ks Schedule
}

func New(key Key) *Cipher {
	return &Cipher{ks: Expand(key)}
}

func (c *Cipher) BlockSize() int { return BlockSize }

// Schedule returns a copy of the round keys.
func (c *Cipher) Schedule() Schedule { return c.ks }

// Encrypt encrypts the first block of src into dst. dst and src may overlap
// entirely. It panics if either is shorter than BlockSize, like crypto/aes.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes128: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes128: output not full block")
	}
	var s State
	copy(s[:], src[:BlockSize])
	EncryptBlock(&s, &c.ks)
	copy(dst, s[:])
}

// EncryptState encrypts a block value and returns the ciphertext block.
func (c *Cipher) EncryptState(s State) State {
	EncryptBlock(&s, &c.ks)
	return s
}
