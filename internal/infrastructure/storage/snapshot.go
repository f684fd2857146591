package storage

import (
	"arena-server/pkg/logger"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SaveSnapshot пишет снимок боя (любое JSON-сериализуемое значение) с отступами.
// Возвращает путь к файлу.
func (s *ReplayService) SaveSnapshot(name string, snapshot any) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(s.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %q: %w", path, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      path,
	}).Debug("Snapshot saved.")
	return path, nil
}
