package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"school-records-backend/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Generated error reports stay downloadable for this long.
const generatedFileTTL = 7 * 24 * time.Hour

// CleanupExpiredFiles removes a file once it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		config.Logger.Info("Deleted expired generated file", zap.String("path", filePath))
	}
	return nil
}

// CleanupAllExpired sweeps the generated-files directory.
func CleanupAllExpired(fileTTL time.Duration) error {
	files, err := os.ReadDir(GeneratedFilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := filepath.Join(GeneratedFilesDir, file.Name())
		if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
			config.Logger.Warn("Error cleaning up file", zap.String("path", filePath), zap.Error(err))
		}
	}

	return nil
}

// RunScheduledCleanup purges expired report files daily.
func RunScheduledCleanup() {
	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		if err := CleanupAllExpired(generatedFileTTL); err != nil {
			config.Logger.Warn("Scheduled cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		config.Logger.Error("Failed to schedule cleanup job", zap.Error(err))
		return
	}
	c.Start()
}
