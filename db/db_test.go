package db

import (
	"testing"

	"go-bank-ledger/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	var cfg config.Config
	cfg.Database.Host = "db"
	cfg.Database.Port = 5433
	cfg.Database.User = "ledger"
	cfg.Database.Password = "p@ss word"
	cfg.Database.Name = "bank_ledger"
	cfg.Database.SSLMode = "disable"

	assert.Equal(t, "postgres://ledger:p%40ss%20word@db:5433/bank_ledger?sslmode=disable", DSN(cfg))
}
