package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"go-bank-ledger/config"
	"go-bank-ledger/logger"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// DSN builds the lib/pq connection URL for cfg. It is also the URL golang-migrate expects.
func DSN(cfg config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Database.User, cfg.Database.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port),
		Path:     cfg.Database.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// Connect opens the pool and waits until the database answers, retrying while it starts up.
func Connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"user":     cfg.Database.User,
	})
	log.Info("Attempting to connect to the database")

	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			log.Info("Database connection established successfully")
			return db, nil
		}
		log.WithError(err).WithField("attempt", attempt).Warn("Database not ready")

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff * time.Duration(attempt)):
		}
	}

	db.Close()
	log.WithError(err).Error("Failed to ping database")
	return nil, fmt.Errorf("failed to ping database: %w", err)
}
