package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"/tmp/secret.txt":      "/tmp/secret.enc",
		"/tmp/archive.tar.gz":  "/tmp/archive.tar.enc",
		"/tmp/noext":           "/tmp/noext.enc",
		"/tmp/dir.d/plainfile": "/tmp/dir.d/plainfile.enc",
	}
	for in, want := range tests {
		if got := outputPath(in); got != want {
			t.Errorf("outputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAskKeyRetries(t *testing.T) {
	inputs := []string{"nothex", "000102030405060708090a0b0c0d0e", "000102030405060708090a0b0c0d0e0f"}
	i := 0
	read := func() (string, error) {
		s := inputs[i]
		i++
		return s, nil
	}
	var out bytes.Buffer
	k, err := askKey(read, &out)
	if err != nil {
		t.Fatal(err)
	}
	if k[15] != 0x0f || i != 3 {
		t.Fatalf("key %x after %d reads", k, i)
	}
	if n := strings.Count(out.String(), msgBadKey); n != 2 {
		t.Fatalf("re-prompted %d times, want 2: %q", n, out.String())
	}
}

func TestAskKeyEOF(t *testing.T) {
	read := lineReader(strings.NewReader("short\n"))
	if _, err := askKey(read, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error at end of input")
	}
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, os.Stdin, &out, &errOut)
	return code, out.String()
}

func TestRunArgumentErrors(t *testing.T) {
	if code, out := runCLI(t); code == 0 || !strings.Contains(out, msgNoFile) {
		t.Fatalf("no args: code %d, out %q", code, out)
	}
	if code, out := runCLI(t, "/a", "/b"); code == 0 || !strings.Contains(out, msgTooMany) {
		t.Fatalf("two args: code %d, out %q", code, out)
	}
	if code, out := runCLI(t, "relative.txt"); code == 0 || !strings.Contains(out, msgFailure) {
		t.Fatalf("relative path: code %d, out %q", code, out)
	}
}

func TestRunEncryptsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "block.bin")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	if err := os.WriteFile(in, pt, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AESENC_TEST_KEY", "000102030405060708090a0b0c0d0e0f")

	code, out := runCLI(t, "-key-env", "AESENC_TEST_KEY", in)
	if code != 0 {
		t.Fatalf("code %d, out %q", code, out)
	}
	enc := filepath.Join(dir, "block.enc")
	if !strings.Contains(out, enc) {
		t.Fatalf("success message %q does not name %s", out, enc)
	}
	ct, err := os.ReadFile(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(ct); got != "69c4e0d86a7b0430d8cdb78070b4c55a" {
		t.Fatalf("ciphertext %s", got)
	}
}

func TestRunPadsShortFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "abc.txt")
	if err := os.WriteFile(in, []byte("ABCDE"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AESENC_TEST_KEY", "2b7e151628aed2a6abf7158809cf4f3c")
	if code, out := runCLI(t, "-key-env", "AESENC_TEST_KEY", in); code != 0 {
		t.Fatalf("code %d, out %q", code, out)
	}
	ct, err := os.ReadFile(filepath.Join(dir, "abc.enc"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != 16 {
		t.Fatalf("len(ct) = %d, want 16", len(ct))
	}
}

func TestRunLeavesNothingOnBadKey(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(in, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AESENC_TEST_KEY", "zz")
	if code, out := runCLI(t, "-key-env", "AESENC_TEST_KEY", in); code == 0 || !strings.Contains(out, msgFailure) {
		t.Fatalf("code %d, out %q", code, out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the input file, found %d entries", len(entries))
	}
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	if code, out := runCLI(t, missing); code == 0 || !strings.Contains(out, msgFailure) {
		t.Fatalf("code %d, out %q", code, out)
	}
}

func TestRunRefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.enc")
	pt := []byte("plaintext that must survive the run")
	if err := os.WriteFile(in, pt, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AESENC_TEST_KEY", "000102030405060708090a0b0c0d0e0f")
	if code, out := runCLI(t, "-key-env", "AESENC_TEST_KEY", in); code == 0 || !strings.Contains(out, msgFailure) {
		t.Fatalf("code %d, out %q", code, out)
	}
	got, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pt) {
		t.Fatalf("input changed to %x", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the input file, found %d entries", len(entries))
	}
}

func TestCheckDistinct(t *testing.T) {
	tests := []struct {
		in, out string
		wantErr bool
	}{
		{"/tmp/notes.enc", "/tmp/notes.enc", true},
		{"/tmp/./notes.enc", "/tmp/notes.enc", true},
		{"/tmp/notes.txt", "/tmp/notes.enc", false},
	}
	for _, tt := range tests {
		err := checkDistinct(tt.in, tt.out)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkDistinct(%q, %q) = %v", tt.in, tt.out, err)
		}
	}
}
