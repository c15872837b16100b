package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var stdinReader = bufio.NewReader(os.Stdin)

// promptLine prints a prompt and reads one line from stdin, trimming the
// trailing newline.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptMasked prints a prompt and reads a line with terminal echo disabled.
// The core never touches terminal modes; this is the one place raw input
// handling lives.
func promptMasked(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
