package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt digest of the plaintext.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored bcrypt digest. The
// comparison is constant-time within bcrypt; distinguishing "no such user"
// from "wrong password" is handled one level up, never here.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
