package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const accountNumberDigits = 10

var (
	accountNumberMin   = new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits-1), nil)
	accountNumberRange = new(big.Int).Sub(
		new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil),
		accountNumberMin,
	)
)

// newAccountNumber returns a random 10-digit number without a leading zero. Callers must still
// check it against existing accounts.
func newAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberRange)
	if err != nil {
		return "", fmt.Errorf("could not generate account number: %w", err)
	}
	return n.Add(n, accountNumberMin).String(), nil
}
