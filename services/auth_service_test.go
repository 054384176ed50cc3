package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	service, err := NewAuthService("club-secret")
	require.NoError(t, err)

	assert.NoError(t, service.CheckPassword("club-secret"))
	assert.ErrorIs(t, service.CheckPassword("wrong"), ErrAuthInvalidPassword)
	assert.ErrorIs(t, service.CheckPassword(""), ErrAuthInvalidPassword)
}
