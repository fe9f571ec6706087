package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig collects everything needed to run the service.
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	RootAdminUsername string
	RootAdminPassword string
}

// Load reads the application config from environment variables, providing
// safe defaults for anything unset.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "inkpress.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "inkpress-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	rootAdminUsername := strings.TrimSpace(os.Getenv("ROOT_ADMIN_USERNAME"))
	rootAdminPassword := strings.TrimSpace(os.Getenv("ROOT_ADMIN_PASSWORD"))

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		RootAdminUsername: rootAdminUsername,
		RootAdminPassword: rootAdminPassword,
	}
}
