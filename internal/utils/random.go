package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

var digits = "0123456789"

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

// GenerateUsernameFromFullName derives a login name from a display name:
// lowercased letters of the name plus a short random digit suffix to dodge
// collisions ("Maria Rossi" -> "mariarossi42").
func GenerateUsernameFromFullName(fullName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(fullName) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		b.WriteByte(digits[rand.Intn(len(digits))])
	}

	return b.String()
}
