// Command hashpw prints the argon2id hash for a password so it can be
// set as PIZZERIA_ADMIN_PASSWORD_HASH instead of the plaintext.
package main

import (
	"fmt"
	"os"

	"github.com/lucasmendez/pizzeria-backend/pkg/security"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash, err := security.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashing failed:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
