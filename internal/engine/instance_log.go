package engine

import (
	"arena-server/internal/domain"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в лог боя
func (i *Instance) AddLog(text, logType string) {
	if logType == "" {
		logType = domain.LogTypeInfo
	}
	i.logSeq++
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", i.ID, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"battle_id": i.ID,
		"component": "battle_log",
		"log_type":  logType,
	}).Info(text)
}

// drainLogs забирает накопленные записи.
func (i *Instance) drainLogs() []api.LogEntry {
	logs := i.Logs
	i.Logs = nil
	return logs
}

func uitoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
