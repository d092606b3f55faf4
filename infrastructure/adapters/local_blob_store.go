package adapters

import (
	"context"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"os"
	"path/filepath"
)

// localBlobStore persists artifacts under a base directory. Refs are the
// logical paths, so the original layout (image/…, video/…, final/…)
// survives unchanged.
type localBlobStore struct {
	baseDir string
	logger  outbound.LoggerPort
}

func NewLocalBlobStore(storageConfig *config.LocalStorageConfig, logger outbound.LoggerPort) outbound.BlobStorePort {
	return &localBlobStore{
		baseDir: storageConfig.BaseDir,
		logger:  logger,
	}
}

func (s *localBlobStore) Save(ctx context.Context, data []byte, logicalPath string, contentType string) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(logicalPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		s.logger.Error(err, "failed to create artifact directory")
		return "", err
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		s.logger.ErrorWithFields(err, "failed to write artifact", map[string]interface{}{
			"path": fullPath,
		})
		return "", err
	}

	s.logger.DebugWithFields("artifact saved", map[string]interface{}{
		"path":         fullPath,
		"content_type": contentType,
		"bytes":        len(data),
	})

	return logicalPath, nil
}

func (s *localBlobStore) Delete(ctx context.Context, ref string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
}

func (s *localBlobStore) UrlFor(ref string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(ref))
}
