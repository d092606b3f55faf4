package config

import "os"

type LocalStorageConfig struct {
	BaseDir string
}

func GetLocalStorageConfig() *LocalStorageConfig {
	baseDir := os.Getenv("STORAGE_DIR")
	if baseDir == "" {
		baseDir = "static"
	}

	return &LocalStorageConfig{
		BaseDir: baseDir,
	}
}
