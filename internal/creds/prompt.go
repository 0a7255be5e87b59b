package creds

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator for an access key and a secret key.
type Prompter interface {
	Ask() (access, secret string, err error)
}

// ReaderPrompter reads both keys line by line, for non-interactive stdin.
type ReaderPrompter struct {
	R io.Reader
	W io.Writer
}

// Ask prints the first-run notice and reads the two keys.
func (p ReaderPrompter) Ask() (string, string, error) {
	fmt.Fprintln(p.W)
	fmt.Fprintln(p.W, "WARNING: User API file '~/.tio/client.json' not found.")
	fmt.Fprintln(p.W)
	fmt.Fprintln(p.W, "Tenable.io access and secret keys are required for all endpoints.")
	fmt.Fprintln(p.W, "Reference: https://developer.tenable.com/")
	fmt.Fprintln(p.W)

	scanner := bufio.NewScanner(p.R)

	access, err := p.readLine(scanner, "Enter Tenable.io AccessKey: ")
	if err != nil {
		return "", "", err
	}
	secret, err := p.readLine(scanner, "Enter Tenable.io SecretKey: ")
	if err != nil {
		return "", "", err
	}
	return access, secret, nil
}

func (p ReaderPrompter) readLine(scanner *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprint(p.W, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}
