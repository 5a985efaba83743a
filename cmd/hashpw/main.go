// Command hashpw prints a bcrypt hash for the password_hash field of an
// admin entry in configs/config.yaml or an AUTH_ADMINS pair.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/yigit/marksheet/internal/pkg/auth"
)

func main() {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// readPassword takes the first argument, or the first line of stdin
func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("usage: hashpw <password> (or pipe it on stdin): %w", err)
		}
		return "", fmt.Errorf("usage: hashpw <password> (or pipe it on stdin)")
	}
	return line, nil
}
