// Package config exposes the environment-driven configuration of the
// Atelier backend. Every setting has a sane default so the service can
// start from a bare environment in development.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("ATELIER_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("ATELIER_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("ATELIER_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("ATELIER_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 3333
	}
	return port
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("ATELIER_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetAuthURL returns the base URL of the external identity provider
// (GoTrue-compatible auth API).
func GetAuthURL() string {
	return strings.TrimRight(os.Getenv("ATELIER_AUTH_URL"), "/")
}

// GetAuthAnonKey returns the public API key sent with every identity call.
func GetAuthAnonKey() string {
	return os.Getenv("ATELIER_AUTH_ANON_KEY")
}

// GetAuthServiceKey returns the privileged key used for admin user creation.
func GetAuthServiceKey() string {
	return os.Getenv("ATELIER_AUTH_SERVICE_KEY")
}

// GetRecoverRedirectURL is the page the provider's password-reset email
// links back to.
func GetRecoverRedirectURL() string {
	url := os.Getenv("ATELIER_RECOVER_REDIRECT_URL")
	if url == "" {
		url = "https://atelier-moveis.com.br/redefinir-senha"
	}
	return url
}

// GetStorageURL returns the base URL of the external object storage API.
func GetStorageURL() string {
	return strings.TrimRight(os.Getenv("ATELIER_STORAGE_URL"), "/")
}

func GetStorageKey() string {
	return os.Getenv("ATELIER_STORAGE_KEY")
}

func GetStorageBucket() string {
	bucket := os.Getenv("ATELIER_STORAGE_BUCKET")
	if bucket == "" {
		bucket = "produtos"
	}
	return bucket
}

// GetSweepSchedule is the cron spec of the orphan-blob sweep job.
// Empty disables the job.
func GetSweepSchedule() string {
	schedule, ok := os.LookupEnv("ATELIER_SWEEP_SCHEDULE")
	if !ok {
		return "@every 6h"
	}
	return strings.TrimSpace(schedule)
}

// GetSweepGraceHours is how old an unreferenced blob must be before the
// sweep job reclaims it.
func GetSweepGraceHours() int {
	hours, err := strconv.Atoi(os.Getenv("ATELIER_SWEEP_GRACE_HOURS"))
	if err != nil || hours < 0 {
		return 24
	}
	return hours
}
