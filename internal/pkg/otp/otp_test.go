package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRangeAndFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := Generate()
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 1000000)
		// raw decimal rendering, no zero padding
		require.Equal(t, strconv.Itoa(n), code)
	}
}

func TestKeyedHashDeterministic(t *testing.T) {
	secret := []byte("code-secret")
	first := KeyedHash("123456", secret)
	second := KeyedHash("123456", secret)
	require.Equal(t, first, second)
	require.Len(t, first, 64)

	require.NotEqual(t, first, KeyedHash("123457", secret))
	require.NotEqual(t, first, KeyedHash("123456", []byte("other-secret")))
}

func TestEqual(t *testing.T) {
	secret := []byte("code-secret")
	hash := KeyedHash("42", secret)
	require.True(t, Equal(hash, KeyedHash("42", secret)))
	require.False(t, Equal(hash, KeyedHash("43", secret)))
}
