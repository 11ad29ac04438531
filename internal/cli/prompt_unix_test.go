//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"
	"testing"
)

func writeEnd(t *testing.T, content string) *os.File {
	t.Helper()
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	t.Cleanup(func() { reader.Close() })
	if _, err := writer.WriteString(content); err != nil {
		t.Fatalf("writing pipe: %v", err)
	}
	writer.Close()
	return reader
}

func TestReadTrimmedLineStripsLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unix newline", content: "hunter2\n", want: "hunter2"},
		{name: "windows newline", content: "hunter2\r\n", want: "hunter2"},
		{name: "eof without newline", content: "hunter2", want: "hunter2"},
		{name: "empty", content: "\n", want: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			line, err := readTrimmedLine(writeEnd(t, test.content))
			if err != nil {
				t.Fatalf("readTrimmedLine() returned error: %v", err)
			}
			if string(line) != test.want {
				t.Fatalf("readTrimmedLine() = %q, want %q", line, test.want)
			}
		})
	}
}

func TestReadLineNoEchoFallsBackOnPipes(t *testing.T) {
	t.Parallel()

	// A pipe is not a terminal, so the termios path is skipped and the
	// secret is read plainly.
	secret, err := readLineNoEcho(writeEnd(t, "hunter2\n"))
	if err != nil {
		t.Fatalf("readLineNoEcho() returned error: %v", err)
	}
	if string(secret) != "hunter2" {
		t.Fatalf("readLineNoEcho() = %q, want %q", secret, "hunter2")
	}
}
