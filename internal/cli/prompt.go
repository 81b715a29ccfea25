package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassphrase reads a passphrase from the terminal without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(b), nil
}

// newPassphrase asks twice and requires both entries to match.
func newPassphrase() (string, error) {
	pass, err := readPassphrase("Passphrase: ")
	if err != nil {
		return "", err
	}
	if pass == "" {
		return "", errors.New("passphrase must not be empty")
	}
	confirm, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}
