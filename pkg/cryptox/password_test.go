package cryptox_test

import (
	"strings"
	"testing"

	"github.com/hallowdale/identity/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("incorrect horse", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		other, err := cryptox.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"not phc":       "plainhash",
		"wrong variant": "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"bad params":    "$argon2id$v=19$oops$c2FsdA$aGFzaA",
		"bad salt":      "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
	}

	for name, encoded := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, cryptox.VerifyPassword("pw", encoded))
		})
	}
}
