package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("Abcdef12", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef12", hash)

	require.NoError(t, Compare(hash, "Abcdef12"))
	require.Error(t, Compare(hash, "abcdef12"))
	require.Error(t, Compare("", "Abcdef12"))
}
