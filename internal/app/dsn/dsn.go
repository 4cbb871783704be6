package dsn

import (
	"fmt"
	"os"
)

// FromEnv assembles the postgres DSN from environment variables.
func FromEnv() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "cms")
	pass := getEnv("DB_PASS", "cms")
	name := getEnv("DB_NAME", "cms")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pass, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
