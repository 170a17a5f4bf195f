package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Covers
		Metadata
		Export
		Tasks
		LinkCleanup
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Covers struct {
		Dir string
	}
	Metadata struct {
		OpenLibraryURL string
		RequestTimeout time.Duration
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	LinkCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Demo struct {
		Enabled bool // Seed an empty catalog and reject writes
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("covers_dir", DefaultCoversDir)
	v.SetDefault("export_dir", "./markdown")

	// OpenLibrary defaults
	v.SetDefault("openlibrary_url", DefaultOpenLibraryURL)
	v.SetDefault("openlibrary_timeout", "10s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Orphan link cleanup defaults
	v.SetDefault("link_cleanup_enabled", true)
	v.SetDefault("link_cleanup_schedule", "0 3 * * *")

	// Demo mode defaults
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		Metadata: Metadata{
			OpenLibraryURL: v.GetString("OPENLIBRARY_URL"),
			RequestTimeout: v.GetDuration("OPENLIBRARY_TIMEOUT"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		LinkCleanup: LinkCleanup{
			Enabled:  v.GetBool("LINK_CLEANUP_ENABLED"),
			Schedule: v.GetString("LINK_CLEANUP_SCHEDULE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
