// Package ecb drives the AES-128 block cipher over a byte stream in
// Electronic Codebook mode. Blocks carry no state between each other, so a
// batch of blocks is fanned out across goroutines and written back in the
// order it was read. The final partial block is zero padded and the
// original length is not recorded anywhere.
package ecb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"aesecb/internal/cipher/aes128"
)

const (
	BlockSize = aes128.BlockSize

	defaultBatchBlocks = 4096
	// below this many blocks a batch is encrypted on the calling goroutine
	minParallelBlocks = 64
)

// ErrIO marks any failure reading the plaintext or writing the ciphertext.
var ErrIO = errors.New("ecb: i/o failure")

type Options struct {
	// Workers caps the goroutines per batch. Zero means runtime.NumCPU().
	Workers int
	// BatchBlocks is how many blocks are read before a batch is encrypted.
	BatchBlocks int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.BatchBlocks <= 0 {
		o.BatchBlocks = defaultBatchBlocks
	}
	return o
}

type Result struct {
	PlaintextBytes  int64 `json:"plaintext_bytes"`
	CiphertextBytes int64 `json:"ciphertext_bytes"`
	Blocks          int64 `json:"blocks"`
}

// CiphertextLength is the output size for n bytes of plaintext.
func CiphertextLength(n int64) int64 {
	return (n + BlockSize - 1) / BlockSize * BlockSize
}

// EncryptStream encrypts everything readable from r and writes the
// ciphertext to w. The round key schedule is expanded once and shared by
// every worker.
func EncryptStream(ctx context.Context, r io.Reader, w io.Writer, key aes128.Key, opts Options) (Result, error) {
	opts = opts.withDefaults()
	c := aes128.New(key)

	var res Result
	buf := make([]byte, opts.BatchBlocks*BlockSize)
	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("ecb: %w", err)
		}
		n, err := io.ReadFull(r, buf)
		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return res, fmt.Errorf("%w: read: %v", ErrIO, err)
		}
		if n == 0 {
			return res, nil
		}

		out := pad(buf, n)
		encryptBlocks(c, out, opts.Workers)
		if _, werr := w.Write(out); werr != nil {
			return res, fmt.Errorf("%w: write: %v", ErrIO, werr)
		}
		res.PlaintextBytes += int64(n)
		res.CiphertextBytes += int64(len(out))
		res.Blocks += int64(len(out) / BlockSize)

		if eof {
			return res, nil
		}
	}
}

// EncryptBytes is EncryptStream over an in-memory plaintext.
func EncryptBytes(plaintext []byte, key aes128.Key) []byte {
	c := aes128.New(key)
	out := make([]byte, CiphertextLength(int64(len(plaintext))))
	copy(out, plaintext)
	encryptBlocks(c, out, 1)
	return out
}

// pad trims buf to n bytes rounded up to a whole block, zeroing the tail.
func pad(buf []byte, n int) []byte {
	end := int(CiphertextLength(int64(n)))
	for i := n; i < end; i++ {
		buf[i] = 0
	}
	return buf[:end]
}

// encryptBlocks encrypts data in place. len(data) must be a multiple of
// BlockSize. Each worker owns a contiguous range of blocks, so output
// order is the input order without any reassembly step.
func encryptBlocks(c *aes128.Cipher, data []byte, workers int) {
	blocks := len(data) / BlockSize
	if workers <= 1 || blocks < minParallelBlocks {
		encryptRange(c, data)
		return
	}
	if workers > blocks {
		workers = blocks
	}
	per := (blocks + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < blocks; start += per {
		end := start + per
		if end > blocks {
			end = blocks
		}
		wg.Add(1)
		go func(chunk []byte) {
			defer wg.Done()
			encryptRange(c, chunk)
		}(data[start*BlockSize : end*BlockSize])
	}
	wg.Wait()
}

func encryptRange(c *aes128.Cipher, data []byte) {
	for off := 0; off < len(data); off += BlockSize {
		blk := data[off : off+BlockSize]
		c.Encrypt(blk, blk)
	}
}
