package config

import (
	"errors"
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

const minSecretStrengthScore = 3

var ErrWeakSecret = errors.New("jwt secret is too weak")

// CheckSecret rejects signing secrets that are empty or easy to guess.
func CheckSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: secret is empty", ErrWeakSecret)
	}

	result := zxcvbn.PasswordStrength(secret, nil)
	if result.Score < minSecretStrengthScore {
		return fmt.Errorf("%w: strength score %d, need %d", ErrWeakSecret, result.Score, minSecretStrengthScore)
	}
	return nil
}
