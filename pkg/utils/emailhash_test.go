package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEmail_Deterministic(t *testing.T) {
	assert.Equal(t, HashEmail("a@x.com"), HashEmail("a@x.com"))
	assert.Len(t, HashEmail("a@x.com"), 64)
}

func TestHashEmail_NormalizesCaseAndWhitespace(t *testing.T) {
	base := HashEmail("a@x.com")
	assert.Equal(t, base, HashEmail("A@X.COM"))
	assert.Equal(t, base, HashEmail("  a@x.com \n"))
}

func TestHashEmail_DistinctAddressesDiffer(t *testing.T) {
	assert.NotEqual(t, HashEmail("a@x.com"), HashEmail("b@x.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}
