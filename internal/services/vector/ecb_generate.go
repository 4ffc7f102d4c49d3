package vector

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aesecb/internal/cipher/aes128"
	"aesecb/internal/services/ecb"
)

type TestMode string

const (
	KAT TestMode = "KAT"
	MMT TestMode = "MMT"
	MCT TestMode = "MCT"
)

// KAT sub-types, named after the NIST AESAVS response files.
const (
	GFSbox  = "GFSBOX"
	KeySbox = "KEYSBOX"
	VarKey  = "VARKEY"
	VarTxt  = "VARTXT"
)

const mctInner = 1000

type GenParams struct {
	Count           int
	IncludeExpected bool
	// Only used when the test mode is KAT.
	KatVariant string
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

type EncRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

type TestVector struct {
	Algorithm  string      `json:"algorithm"`
	Mode       string      `json:"mode"`
	TestMode   string      `json:"test_mode"`
	KatVariant string      `json:"kat_variant,omitempty"`
	KeyBits    int         `json:"key_bits"`
	Encrypt    []EncRecord `json:"encrypt"`
}

// ParseTestMode accepts KAT, MMT or MCT in any case.
func ParseTestMode(s string) (TestMode, error) {
	switch TestMode(strings.ToUpper(strings.TrimSpace(s))) {
	case KAT:
		return KAT, nil
	case MMT:
		return MMT, nil
	case MCT:
		return MCT, nil
	}
	return "", fmt.Errorf("unsupported test_mode %q", s)
}

// GenerateECB builds AES-128 ECB encrypt vectors with the from-scratch
// cipher. There is no decrypt section because the cipher has no inverse.
func GenerateECB(test TestMode, p GenParams) (TestVector, error) {
	if p.Count <= 0 {
		p.Count = 10
	}
	if p.Rand == nil {
		p.Rand = rand.Reader
	}
	out := TestVector{Algorithm: "AES", Mode: "ECB", TestMode: string(test), KeyBits: 128}

	rnd := func(n int) ([]byte, error) {
		b := make([]byte, n)
		if _, err := io.ReadFull(p.Rand, b); err != nil {
			return nil, fmt.Errorf("random source: %w", err)
		}
		return b, nil
	}
	add := func(i int, key aes128.Key, pt, ct []byte) {
		r := EncRecord{Count: i, KeyHex: hex.EncodeToString(key[:]), Plaintext: hex.EncodeToString(pt)}
		if p.IncludeExpected {
			r.Ciphertext = hex.EncodeToString(ct)
		}
		out.Encrypt = append(out.Encrypt, r)
	}

	switch test {
	case KAT:
		variant := strings.ToUpper(strings.TrimSpace(p.KatVariant))
		out.KatVariant = variant
		switch variant {
		case GFSbox:
			// zero key, random plaintext
			var key aes128.Key
			for i := 0; i < p.Count; i++ {
				pt, err := rnd(aes128.BlockSize)
				if err != nil {
					return TestVector{}, err
				}
				add(i, key, pt, ecb.EncryptBytes(pt, key))
			}
		case KeySbox:
			// random key, zero plaintext
			pt := make([]byte, aes128.BlockSize)
			for i := 0; i < p.Count; i++ {
				kb, err := rnd(aes128.KeySize)
				if err != nil {
					return TestVector{}, err
				}
				key := aes128.Key(kb)
				add(i, key, pt, ecb.EncryptBytes(pt, key))
			}
		case VarKey:
			pt := make([]byte, aes128.BlockSize)
			for i := 0; i < min(p.Count, 128); i++ {
				key := aes128.Key(leftmostBits(aes128.KeySize, i+1))
				add(i, key, pt, ecb.EncryptBytes(pt, key))
			}
		case VarTxt:
			var key aes128.Key
			for i := 0; i < min(p.Count, 128); i++ {
				pt := leftmostBits(aes128.BlockSize, i+1)
				add(i, key, pt, ecb.EncryptBytes(pt, key))
			}
		default:
			return TestVector{}, fmt.Errorf("KAT requires kat_variant (GFSBOX|KEYSBOX|VARKEY|VARTXT)")
		}

	case MMT:
		// record i carries i+1 blocks
		for i := 0; i < p.Count; i++ {
			kb, err := rnd(aes128.KeySize)
			if err != nil {
				return TestVector{}, err
			}
			pt, err := rnd((i + 1) * aes128.BlockSize)
			if err != nil {
				return TestVector{}, err
			}
			key := aes128.Key(kb)
			add(i, key, pt, ecb.EncryptBytes(pt, key))
		}

	case MCT:
		kb, err := rnd(aes128.KeySize)
		if err != nil {
			return TestVector{}, err
		}
		pt, err := rnd(aes128.BlockSize)
		if err != nil {
			return TestVector{}, err
		}
		key := aes128.Key(kb)
		for i := 0; i < p.Count; i++ {
			ct := MonteCarloECB(key, aes128.State(pt))
			add(i, key, pt, ct[:])
			for j := range key {
				key[j] ^= ct[j]
			}
			pt = ct[:]
		}

	default:
		return TestVector{}, fmt.Errorf("unsupported test_mode %q", test)
	}
	return out, nil
}

// MonteCarloECB encrypts pt 1000 times, feeding each ciphertext back in
// as the next plaintext, and returns the last ciphertext.
func MonteCarloECB(key aes128.Key, pt aes128.State) aes128.State {
	c := aes128.New(key)
	for j := 0; j < mctInner; j++ {
		pt = c.EncryptState(pt)
	}
	return pt
}

// ToTXT renders the vectors in the NIST .rsp layout.
func (v TestVector) ToTXT() string {
	var b strings.Builder
	b.WriteString("# AES-128 ECB " + v.TestMode)
	if v.KatVariant != "" {
		b.WriteString(" " + v.KatVariant)
	}
	b.WriteString("\n\n[ENCRYPT]\n\n")
	for _, r := range v.Encrypt {
		b.WriteString("COUNT = " + strconv.Itoa(r.Count) + "\n")
		b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
		b.WriteString("PLAINTEXT = " + strings.ToLower(r.Plaintext) + "\n")
		if r.Ciphertext != "" {
			b.WriteString("CIPHERTEXT = " + strings.ToLower(r.Ciphertext) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// leftmostBits returns n bytes whose first k bits are set.
func leftmostBits(n, k int) []byte {
	b := make([]byte, n)
	for i := 0; i < k; i++ {
		b[i/8] |= 0x80 >> (i % 8)
	}
	return b
}
