// Command hashpw reads a password from the terminal without echo and prints
// its bcrypt digest. Useful when provisioning seed accounts by hand.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/sbperudesarrollo/authbase/internal/server/password"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	plaintext, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if len(plaintext) == 0 {
		log.Fatal("empty password")
	}

	hash, err := password.Hash(string(plaintext))
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	fmt.Println(hash)
}
