// Command aesenc encrypts a file with AES-128 in ECB mode. The ciphertext
// is written next to the input with its extension replaced by ".enc".
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"aesecb/internal/cipher/aes128"
	"aesecb/internal/config"
	"aesecb/internal/logger"
	"aesecb/internal/services/ecb"
	"aesecb/internal/util"
)

const (
	msgNoFile   = "No file specified. Try again."
	msgTooMany  = "The file name should be the only command line argument. Please try again."
	msgFailure  = "Error! Please verify that the command line argument is an absolute path to a valid file."
	msgPrompt   = "Please enter a 32 digit hex key: "
	msgBadKey   = "Error! The key is not a 32 digit hex value. Please try again: "
	msgSuccessF = "Success! The ciphertext can be found in %s\n"
)

var (
	errRelativePath   = errors.New("path is not absolute")
	errOverwriteInput = errors.New("output path is the input file")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("aesenc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("workers", 0, "goroutines per batch (0 = one per CPU)")
	keyEnv := fs.String("key-env", "", "read the hex key from this environment variable instead of prompting")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	level := "warn"
	if *verbose {
		level = "debug"
	}
	lg := logger.New(level)
	defer lg.Sync()
	if *workers == 0 {
		*workers = cfg.ECBWorkers
	}

	switch fs.NArg() {
	case 0:
		fmt.Fprintln(stdout, msgNoFile)
		return 1
	case 1:
	default:
		fmt.Fprintln(stdout, msgTooMany)
		return 1
	}

	outPath, err := encryptFile(fs.Arg(0), stdin, stdout, *keyEnv, *workers, lg)
	if err != nil {
		lg.Debugw("encryption failed", "path", fs.Arg(0), "error", err)
		fmt.Fprintln(stdout, msgFailure)
		return 1
	}
	fmt.Fprintf(stdout, msgSuccessF, outPath)
	return 0
}

func encryptFile(path string, stdin *os.File, stdout io.Writer, keyEnv string, workers int, lg *zap.SugaredLogger) (string, error) {
	if !filepath.IsAbs(path) {
		return "", errRelativePath
	}
	outPath := outputPath(path)
	if err := checkDistinct(path, outPath); err != nil {
		return "", err
	}
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	var key aes128.Key
	if keyEnv != "" {
		key, err = util.ParseKey(os.Getenv(keyEnv))
	} else {
		key, err = promptKey(stdin, stdout)
	}
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	res, err := ecb.EncryptStream(context.Background(), bufio.NewReader(in), bw, key, ecb.Options{Workers: workers})
	if err == nil {
		err = bw.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", err
	}
	lg.Debugw("encrypted", "in", path, "out", outPath, "plaintext_bytes", res.PlaintextBytes, "blocks", res.Blocks)
	return outPath, nil
}

// checkDistinct refuses an output path that names the input file, as it
// does for "notes.enc". The rename would replace the plaintext.
func checkDistinct(inPath, outPath string) error {
	if filepath.Clean(inPath) == filepath.Clean(outPath) {
		return errOverwriteInput
	}
	return nil
}

// outputPath swaps the last extension of path for ".enc". A dot in a
// directory name does not count as an extension.
func outputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".enc"
}
