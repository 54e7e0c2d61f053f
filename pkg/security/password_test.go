package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MaxCost + 1)

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
