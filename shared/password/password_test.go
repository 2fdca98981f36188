package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "valid password", password: "lacasa2024"},
		{name: "unicode password", password: "contraseña123"},
		{name: "empty password", password: "", expectedError: password.ErrEmptyPassword},
		{name: "password over bcrypt limit", password: strings.Repeat("a", 100), expectedError: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	validHash, err := password.Hash("lacasa2024")
	require.NoError(t, err)

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "matching password", password: "lacasa2024", hash: validHash},
		{name: "wrong password", password: "lacasa2025", hash: validHash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: validHash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: "lacasa2024", hash: "", expectedError: password.ErrInvalidPassword},
		{name: "malformed hash", password: "lacasa2024", hash: "not-a-hash", expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedError == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("lacasa2024")
	require.NoError(t, err)

	second, err := password.Hash("lacasa2024")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
