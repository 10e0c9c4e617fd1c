package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretStoreLastWriterWins(t *testing.T) {
	s := NewSecretStore()
	assert.Empty(t, s.Get())

	s.Set("one")
	assert.Equal(t, "one", s.Get())

	s.Set("two")
	assert.Equal(t, "two", s.Get())
}
