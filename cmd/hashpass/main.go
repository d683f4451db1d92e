// Command hashpass prints a bcrypt hash for the admin_pass_hash config key.
// The password is read from the first line of stdin.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"shopfloor-sim/internal/middleware/auth"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Error("failed to read password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		log.Error("empty password")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(hash)
}
