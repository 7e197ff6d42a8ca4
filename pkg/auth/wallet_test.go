package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWalletAuth_ValidateToken(t *testing.T) {
	w := NewWalletAuth("test-secret", false)

	t.Run("Round trip", func(t *testing.T) {
		token := w.Token("0xDeadBeef", time.Now())

		user, err := w.validateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "0xdeadbeef", user.Address)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := w.Token("0xabc", time.Now().Add(-25*time.Hour))

		_, err := w.validateToken(token)
		assert.Error(t, err)
	})

	t.Run("Tampered signature", func(t *testing.T) {
		token := w.Token("0xabc", time.Now()) + "ff"

		_, err := w.validateToken(token)
		assert.Error(t, err)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewWalletAuth("other-secret", false)
		token := other.Token("0xabc", time.Now())

		_, err := w.validateToken(token)
		assert.Error(t, err)
	})

	t.Run("Malformed token", func(t *testing.T) {
		_, err := w.validateToken("just-one-part")
		assert.Error(t, err)
	})

	t.Run("Debug mode skips the signature", func(t *testing.T) {
		debug := NewWalletAuth("test-secret", true)
		token := debug.Token("0xabc", time.Now())
		token = token[:len(token)-4] + "0000"

		user, err := debug.validateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "0xabc", user.Address)
	})
}
