package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("stack full", From("stack full"))
	assert.Equal("pc 0x0200", From("pc %#04x", 0x200))
	assert.Equal("V3=7", From("V%X=%d", 3, 7))
}

func TestMatch_EmptyUsesFallback(t *testing.T) {
	assert.Equal(t, match([]string{fallbackLocale}), match(nil))
	assert.NotEmpty(t, Language())
}
