package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"aesecb/internal/cipher/aes128"
	"aesecb/internal/util"
)

// promptKey asks for the key until a valid one is entered. Input is not
// echoed when stdin is a terminal.
func promptKey(stdin *os.File, stdout io.Writer) (aes128.Key, error) {
	read := lineReader(stdin)
	if term.IsTerminal(int(stdin.Fd())) {
		read = func() (string, error) {
			b, err := term.ReadPassword(int(stdin.Fd()))
			fmt.Fprintln(stdout)
			return string(b), err
		}
	}
	return askKey(read, stdout)
}

func askKey(read func() (string, error), stdout io.Writer) (aes128.Key, error) {
	fmt.Fprint(stdout, msgPrompt)
	for {
		s, err := read()
		if err != nil {
			return aes128.Key{}, fmt.Errorf("read key: %w", err)
		}
		if k, err := util.ParseKey(s); err == nil {
			return k, nil
		}
		fmt.Fprint(stdout, msgBadKey)
	}
}

func lineReader(r io.Reader) func() (string, error) {
	br := bufio.NewReader(r)
	return func() (string, error) {
		line, err := br.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		return strings.TrimRight(line, "\r\n"), err
	}
}
