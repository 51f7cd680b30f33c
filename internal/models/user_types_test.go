package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("correct horse battery staple"))
	require.NotEmpty(t, p.Hash)

	match, err := p.Matches("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = p.Matches("wrong password")
	require.NoError(t, err)
	assert.False(t, match)
}
