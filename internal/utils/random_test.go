package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateRandomOTP()
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
	assert.Empty(t, GenerateRandomPassword(0))
}

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Maria Rossi")
	assert.True(t, strings.HasPrefix(username, "mariarossi"), username)

	trailer := strings.TrimPrefix(username, "mariarossi")
	assert.GreaterOrEqual(t, len(trailer), 1)
	assert.LessOrEqual(t, len(trailer), 3)
	for _, r := range trailer {
		assert.True(t, r >= '0' && r <= '9')
	}
}
