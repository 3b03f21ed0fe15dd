// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MakeDSNFromEnv assembles a MySQL DSN from the DB_* environment variables.
// DB_DSN, when set, wins over the individual parts.
func MakeDSNFromEnv() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	user := envOr("DB_USER", "scheduler")
	pass := os.Getenv("DB_PASSWORD")
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "3306")
	name := envOr("DB_NAME", "scheduling")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, name)
}

// ConnectToDB opens a MySQL connection with the given DSN, retrying for a
// short period so the service survives the database coming up after it.
func ConnectToDB(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			return db, nil
		}
		slog.Warn("database not reachable, retrying", "attempt", i+1)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("connecting to database: %w", err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
