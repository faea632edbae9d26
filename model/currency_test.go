package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFitsCurrency(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   bool
	}{
		{"10.25", "USD", true},
		{"10.250", "USD", true},
		{"10.255", "USD", false},
		{"1500", "JPY", true},
		{"1500.5", "jpy", false},
		{"1.125", "KWD", true},
		{"1.1255", "KWD", false},
		{"0.01", "XYZ", true},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, FitsCurrency(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestAccount_CanBeViewedBy(t *testing.T) {
	poa := int64(9)
	acc := &Account{UserID: 3, PowerOfAttorneyUserID: &poa}

	assert.True(t, acc.CanBeViewedBy(3))
	assert.True(t, acc.CanBeViewedBy(9))
	assert.False(t, acc.CanBeViewedBy(4))
	assert.False(t, (&Account{UserID: 3}).CanBeViewedBy(9))
}
