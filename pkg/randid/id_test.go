package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]*$`)

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{-3, 0, 1, 6, 32} {
		got := Generate(n)
		assert.Len(t, got, max(n, 0), "Generate(%d)", n)
		assert.Regexp(t, idPattern, got)
	}
}

func TestDialogID(t *testing.T) {
	seen := make(map[string]struct{}, 200)
	for range 200 {
		id := DialogID()
		assert.Len(t, id, DialogIDLength)
		seen[id] = struct{}{}
	}
	// 36^6 values; a handful of collisions in 200 draws would point at a
	// broken source, not bad luck.
	assert.GreaterOrEqual(t, len(seen), 195)
}

func TestGenerate_UsesWholeAlphabet(t *testing.T) {
	var letters, digits bool
	for _, c := range Generate(2000) {
		switch {
		case c >= 'a' && c <= 'z':
			letters = true
		case c >= '0' && c <= '9':
			digits = true
		}
	}
	assert.True(t, letters, "no letters drawn")
	assert.True(t, digits, "no digits drawn")
}
