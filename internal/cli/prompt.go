package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrEmptyInput = errors.New("empty input")

// PromptPassword reads a secret from the terminal with echo disabled,
// restoring the terminal state before returning.
func PromptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := readLineNoEcho(os.Stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(secret) == 0 {
		return "", ErrEmptyInput
	}
	return string(secret), nil
}

// PromptLine reads a plain line of input with the label shown.
func PromptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrEmptyInput
	}
	return line, nil
}
