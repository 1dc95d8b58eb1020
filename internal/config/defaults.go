package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values applied when no source sets a field.
const (
	DefaultDriver         = "sqlite"
	DefaultCipher         = "aes-256-gcm"
	DefaultKDFTime        = 1
	DefaultKDFMemoryKiB   = 64 * 1024
	DefaultKDFThreads     = 4
	DefaultHTTPAddress    = "127.0.0.1:7420"
	DefaultRequestTimeout = 10 * time.Second
	DefaultSyncTimeout    = 15 * time.Second
	DefaultLogLevel       = "info"
	defaultDataDirName    = ".onelock"
	defaultSQLiteFileName = "onelock.db"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Cipher:       DefaultCipher,
			KDFTime:      DefaultKDFTime,
			KDFMemoryKiB: DefaultKDFMemoryKiB,
			KDFThreads:   DefaultKDFThreads,
		},
		Storage: Storage{
			Driver: DefaultDriver,
			DSN:    defaultDSN(),
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			RequestTimeout: DefaultSyncTimeout,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultSQLiteFileName
	}
	return filepath.Join(home, defaultDataDirName, defaultSQLiteFileName)
}
