// Command aeskat runs the built-in AES-128 known-answer vectors through the
// cipher and prints the computed ciphertexts as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"aesecb/internal/logger"
	"aesecb/internal/services/vector"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("aeskat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	failedOnly := fs.Bool("failed", false, "print only vectors with a mismatching block")
	level := fs.String("log-level", "warn", "log level (debug|info|warn)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	lg := logger.New(*level)
	defer lg.Sync()

	vs := vector.KnownECB128()
	ok := vector.RunKnown(vs)
	if *failedOnly {
		vs = failing(vs)
	}
	js, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		lg.Errorw("marshal vectors", "error", err)
		return 1
	}
	fmt.Fprintln(stdout, string(js))
	if !ok {
		lg.Errorw("known answer test failed")
		return 1
	}
	lg.Infow("known answer test passed", "vectors", len(vs))
	return 0
}

func failing(vs []vector.KnownVector) []vector.KnownVector {
	out := []vector.KnownVector{}
	for _, v := range vs {
		for _, b := range v.Blocks {
			if !b.OK {
				out = append(out, v)
				break
			}
		}
	}
	return out
}
