package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccountCode generates a random numeric account number of the given
// number of digits (1 to 15), without a leading zero. Uniqueness is not
// guaranteed here; callers must rely on the unique constraint in storage and
// retry on collision.
func GenerateAccountCode(digits int) (string, error) {
	if digits < 1 || digits > 15 {
		return "", fmt.Errorf("digits must be between 1 and 15, got %d", digits)
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}
	high := low*10 - 1

	n, err := rand.Int(rand.Reader, big.NewInt(high-low+1))
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%d", low+n.Int64()), nil
}
