// Package password generates high-entropy passwords with character-class
// guarantees and wraps the bcrypt hashing scheme used for stored credentials.
//
// Plaintext passwords are never logged or persisted by this package.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/sbperudesarrollo/authbase/internal/common"
)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// categories fixes the seeding order: one character from each is placed
// before the remaining positions are filled from the combined pool.
var categories = [...]string{upperChars, lowerChars, digitChars, specialChars}

const allChars = upperChars + lowerChars + digitChars + specialChars

// Generate produces a random password of exactly length characters drawn
// from the combined alphabet. For length >= 4 the result contains at least
// one character from each category; shorter lengths seed as many categories
// as fit, in the fixed order above.
//
// All draws come from crypto/rand and are uniform over their domain. The
// final Fisher–Yates shuffle removes the positional bias introduced by
// category seeding.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: password length must be positive", common.ErrValidation)
	}

	buf := make([]byte, length)

	seeded := len(categories)
	if length < seeded {
		seeded = length
	}
	for i := 0; i < seeded; i++ {
		c, err := randomChar(categories[i])
		if err != nil {
			return "", err
		}
		buf[i] = c
	}

	for i := seeded; i < length; i++ {
		c, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}

	if err := shuffle(buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

// randomChar draws one character uniformly from set. crypto/rand.Int uses
// rejection sampling, so there is no modulo bias.
func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return set[n.Int64()], nil
}

// shuffle performs an unbiased Fisher–Yates shuffle, iterating from the last
// index down to 1 and swapping with a uniformly drawn index in [0, i].
func shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("reading random source: %w", err)
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
