package version

import (
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X arena-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// Protocol - версия формата снимков и команд WebSocket.
// Меняется вместе с pkg/api.
const Protocol = 1

// epoch - день, от которого считается номер сборки.
var epoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// BuildInfo - метаданные сборки для /version и логов старта.
type BuildInfo struct {
	Build    int    `json:"build"`
	Date     string `json:"date,omitempty"`
	Commit   string `json:"commit,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Protocol int    `json:"protocol"`
	Error    string `json:"error,omitempty"`
}

// BuildNumber - число дней от epoch до BuildDate.
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, epoch.Format("2006-01-02"))
	}
	return int(t.Sub(epoch).Hours() / 24), nil
}

// Info собирает BuildInfo из переменных сборки.
func Info() BuildInfo {
	info := BuildInfo{
		Date:     BuildDate,
		Commit:   BuildCommit,
		Branch:   BuildBranch,
		Protocol: Protocol,
	}
	n, err := BuildNumber(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Build = n
	return info
}

// String - строка для лога старта.
func String() string {
	info := Info()
	if info.Error != "" {
		return fmt.Sprintf("Arena dev build, protocol v%d", info.Protocol)
	}
	return fmt.Sprintf("Arena build %d (%s) commit[%s] branch[%s] protocol v%d",
		info.Build, info.Date, or(info.Commit, "unknown"), or(info.Branch, "unknown"), info.Protocol)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
