package config

import (
	"fmt"
	"os"
	"strings"
)

const AVATAR_SIZE = 64

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Port      string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	FEOrigins []string
	UseMemory bool
}

func FromEnv() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}

	cfg := &Config{
		Port:      port,
		GinMode:   os.Getenv("GIN_MODE"),
		DBUser:    os.Getenv("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    os.Getenv("DB_HOST"),
		DBName:    os.Getenv("DB_NAME"),
		UseMemory: os.Getenv("DB_MEMORY") == "true",
	}
	if cfg.DBName == "" {
		cfg.DBName = "studyboard"
	}
	if origins := os.Getenv("FE_ORIGINS"); origins != "" {
		cfg.FEOrigins = strings.Split(origins, ";")
	} else {
		cfg.FEOrigins = []string{"http://localhost:3000"}
	}

	if !cfg.UseMemory && (cfg.DBUser == "" || cfg.DBHost == "") {
		return nil, fmt.Errorf("$DB_USER and $DB_HOST must be set (or $DB_MEMORY=true)")
	}
	return cfg, nil
}

// DSN builds the mysql connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBName)
}
