// Package randid generates short random identifiers for dialogs and runs.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random lowercase alphanumeric string of the given length.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}

// DialogIDLength is the length of generated dialog IDs.
const DialogIDLength = 6

// DialogID returns a fresh identifier for a dialog instance.
func DialogID() string {
	return Generate(DialogIDLength)
}
