package ecb

import (
	"bytes"
	"context"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"

	"aesecb/internal/cipher/aes128"
)

func mustKey(t *testing.T, s string) aes128.Key {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != aes128.KeySize {
		t.Fatalf("bad key %q: %v", s, err)
	}
	return aes128.Key(b)
}

func encrypt(t *testing.T, pt []byte, key aes128.Key, opts Options) ([]byte, Result) {
	t.Helper()
	var out bytes.Buffer
	res, err := EncryptStream(context.Background(), bytes.NewReader(pt), &out, key, opts)
	if err != nil {
		t.Fatalf("EncryptStream: %v", err)
	}
	return out.Bytes(), res
}

func TestEncryptStreamFIPS197(t *testing.T) {
	key := mustKey(t, "000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	ct, res := encrypt(t, pt, key, Options{})
	if got := hex.EncodeToString(ct); got != "69c4e0d86a7b0430d8cdb78070b4c55a" {
		t.Fatalf("ciphertext = %s", got)
	}
	if res.Blocks != 1 || res.PlaintextBytes != 16 || res.CiphertextBytes != 16 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestEncryptStreamShortInputIsZeroPadded(t *testing.T) {
	key := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	ct, res := encrypt(t, []byte("ABCDE"), key, Options{})
	if len(ct) != BlockSize {
		t.Fatalf("len(ct) = %d, want %d", len(ct), BlockSize)
	}
	if res.PlaintextBytes != 5 || res.Blocks != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	padded := make([]byte, BlockSize)
	copy(padded, "ABCDE")
	ref, _ := aes.NewCipher(key[:])
	want := make([]byte, BlockSize)
	ref.Encrypt(want, padded)
	if !bytes.Equal(ct, want) {
		t.Fatalf("ct = %x, want %x", ct, want)
	}
}

func TestEncryptStreamOutputLength(t *testing.T) {
	key := mustKey(t, "000102030405060708090a0b0c0d0e0f")
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 1000, 4096*16 + 3} {
		pt := bytes.Repeat([]byte{0xa5}, n)
		ct, res := encrypt(t, pt, key, Options{BatchBlocks: 7})
		want := (n + 15) / 16 * 16
		if len(ct) != want {
			t.Errorf("L=%d: len(ct) = %d, want %d", n, len(ct), want)
		}
		if res.CiphertextBytes != int64(want) || CiphertextLength(int64(n)) != int64(want) {
			t.Errorf("L=%d: result %+v, CiphertextLength %d", n, res, CiphertextLength(int64(n)))
		}
	}
}

func TestEncryptStreamIdenticalPrefixBlocks(t *testing.T) {
	key := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	rng := rand.New(rand.NewSource(4))
	prefix := make([]byte, 5*BlockSize)
	rng.Read(prefix)

	a := append(append([]byte{}, prefix...), []byte("tail one")...)
	b := append(append([]byte{}, prefix...), bytes.Repeat([]byte{0xff}, 100)...)

	ctA, _ := encrypt(t, a, key, Options{})
	ctB, _ := encrypt(t, b, key, Options{})
	if !bytes.Equal(ctA[:len(prefix)], ctB[:len(prefix)]) {
		t.Fatal("ciphertext of identical leading blocks differs")
	}
}

func TestEncryptStreamRepeatedBlocksRepeat(t *testing.T) {
	key := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	blk := []byte("0123456789abcdef")
	ct, _ := encrypt(t, bytes.Repeat(blk, 3), key, Options{})
	if !bytes.Equal(ct[:16], ct[16:32]) || !bytes.Equal(ct[16:32], ct[32:]) {
		t.Fatalf("equal plaintext blocks gave different ciphertext: %x", ct)
	}
}

func TestEncryptStreamParallelMatchesSerial(t *testing.T) {
	key := mustKey(t, "000102030405060708090a0b0c0d0e0f")
	rng := rand.New(rand.NewSource(5))
	pt := make([]byte, 1000*BlockSize+9)
	rng.Read(pt)

	serial, _ := encrypt(t, pt, key, Options{Workers: 1, BatchBlocks: 100})
	parallel, _ := encrypt(t, pt, key, Options{Workers: 8, BatchBlocks: 333})
	if !bytes.Equal(serial, parallel) {
		t.Fatal("parallel output differs from serial output")
	}
	if !bytes.Equal(serial, EncryptBytes(pt, key)) {
		t.Fatal("EncryptBytes differs from EncryptStream")
	}
}

func TestEncryptStreamMatchesStdlibECB(t *testing.T) {
	key := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	pt, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a" +
		"ae2d8a571e03ac9c9eb76fac45af8e51" +
		"30c81c46a35ce411e5fbc1191a0a52ef" +
		"f69f2445df4f9b17ad2b417be66c3710")
	want, _ := hex.DecodeString("3ad77bb40d7a3660a89ecaf32466ef97" +
		"f5d3d58503b9699de785895a96fdbaaf" +
		"43b1cd7f598ece23881b00e3ed030688" +
		"7b0c785e27e8ad3f8223207104725dd4")
	ct, _ := encrypt(t, pt, key, Options{Workers: 4})
	if !bytes.Equal(ct, want) {
		t.Fatalf("ct = %x, want %x", ct, want)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncryptStreamIOErrors(t *testing.T) {
	key := mustKey(t, "000102030405060708090a0b0c0d0e0f")

	_, err := EncryptStream(context.Background(), failingReader{errors.New("boom")}, io.Discard, key, Options{})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("read error = %v, want ErrIO", err)
	}

	_, err = EncryptStream(context.Background(), bytes.NewReader([]byte("x")), failingWriter{}, key, Options{})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("write error = %v, want ErrIO", err)
	}
}

func TestEncryptStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EncryptStream(ctx, bytes.NewReader([]byte("data")), io.Discard, aes128.Key{}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestEncryptStreamEmptyInput(t *testing.T) {
	ct, res := encrypt(t, nil, aes128.Key{}, Options{})
	if len(ct) != 0 || res.Blocks != 0 {
		t.Fatalf("empty input produced %d bytes, %+v", len(ct), res)
	}
}
