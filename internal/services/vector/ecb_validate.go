package vector

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aesecb/internal/cipher/aes128"
	"aesecb/internal/services/ecb"
)

type Record struct {
	Count   int
	Key     []byte
	PT      []byte
	CT      []byte
	Section string // ENCRYPT or DECRYPT
	// MCT marks records from a Monte Carlo file, where CT is the result of
	// 1000 chained encryptions.
	MCT bool
}

type Mismatch struct {
	Count    int    `json:"count"`
	Section  string `json:"section"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type ValidationResult struct {
	Total    int        `json:"total"`
	Passed   int        `json:"passed"`
	Failed   int        `json:"failed"`
	Skipped  int        `json:"skipped"`
	Failures []Mismatch `json:"failures,omitempty"`
}

// ParseVectorFile reads a NIST .rsp style file. A header comment naming
// "MCT" (as in ECBMCT128.rsp) marks every record as Monte Carlo.
func ParseVectorFile(r io.Reader) ([]Record, error) {
	var recs []Record
	sc := bufio.NewScanner(r)
	section := ""
	mct := false
	var cur Record
	started := false

	flush := func() {
		if started {
			cur.Section = section
			cur.MCT = mct
			recs = append(recs, cur)
		}
		cur = Record{}
		started = false
	}

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if strings.Contains(strings.ToUpper(text), "MCT") {
				mct = true
			}
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			flush()
			section = strings.ToUpper(strings.Trim(text, "[]"))
			continue
		}
		k, v, ok := strings.Cut(text, "=")
		if !ok {
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		var err error
		switch k {
		case "COUNT":
			flush()
			started = true
			cur.Count, err = strconv.Atoi(v)
		case "KEY":
			started = true
			cur.Key, err = hex.DecodeString(v)
		case "PLAINTEXT":
			started = true
			cur.PT, err = hex.DecodeString(v)
		case "CIPHERTEXT":
			started = true
			cur.CT, err = hex.DecodeString(v)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, k, err)
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ValidateECB checks ENCRYPT records against the from-scratch cipher.
// DECRYPT records are counted as skipped.
func ValidateECB(recs []Record) (ValidationResult, error) {
	res := ValidationResult{Total: len(recs)}
	for _, r := range recs {
		if r.Section != "ENCRYPT" {
			res.Skipped++
			continue
		}
		if len(r.Key) != aes128.KeySize {
			return res, fmt.Errorf("unsupported key size %d at COUNT=%d", len(r.Key)*8, r.Count)
		}
		if len(r.PT)%aes128.BlockSize != 0 {
			return res, fmt.Errorf("PT not block-aligned at COUNT=%d", r.Count)
		}
		key := aes128.Key(r.Key)

		var got []byte
		if r.MCT {
			if len(r.PT) != aes128.BlockSize {
				return res, fmt.Errorf("MCT PT must be one block at COUNT=%d", r.Count)
			}
			ct := MonteCarloECB(key, aes128.State(r.PT))
			got = ct[:]
		} else {
			got = ecb.EncryptBytes(r.PT, key)
		}

		if bytes.Equal(got, r.CT) {
			res.Passed++
			continue
		}
		res.Failed++
		res.Failures = append(res.Failures, Mismatch{
			Count:    r.Count,
			Section:  r.Section,
			Expected: hex.EncodeToString(r.CT),
			Got:      hex.EncodeToString(got),
		})
	}
	return res, nil
}
