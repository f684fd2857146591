package storage

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `ARRP` // 4 байта
	Version1    uint32 = 1

	// FileExt - расширение файлов реплеев.
	FileExt = ".arrp"
)

// ReplayFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: тут только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	BattleIDLen uint16  // 2 байта, сам ID идет сразу за заголовком
	ActionCount uint32  // 4 байта
}

// ActionHeader - заголовок каждой записи команды.
type ActionHeader struct {
	Turn       uint32 // 4
	Actor      uint32 // 4
	Command    uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

// NewReplayService создает папку для реплеев, если её нет.
func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir %q: %w", dir, err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет реплей в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d_%d%s", session.BattleID, session.Seed, session.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteReplay(w, session); err != nil {
		return "", fmt.Errorf("write replay %q: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"battle_id": session.BattleID,
		"actions":   len(session.Actions),
		"path":      path,
	}).Info("Replay saved.")
	return path, nil
}

// WriteReplay кодирует сессию в бинарный формат ARRP.
func WriteReplay(w io.Writer, s *domain.ReplaySession) error {
	battleID := []byte(s.BattleID)
	if len(battleID) > 0xFFFF {
		return fmt.Errorf("battle id too long: %d", len(battleID))
	}

	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		BattleIDLen: uint16(len(battleID)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(battleID); err != nil {
		return err
	}

	// 2. Команды
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 0xFFFF {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       uint32(act.Turn),
			Actor:      uint32(act.Actor),
			Command:    uint8(act.Command),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
