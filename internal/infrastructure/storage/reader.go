package storage

import (
	"arena-server/internal/domain"
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidReplay - файл не является реплеем ARRP поддерживаемой версии.
var ErrInvalidReplay = errors.New("invalid replay file")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadReplay(path)
}

// LoadReplay читает реплей с диска.
func LoadReplay(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	session, err := ReadReplay(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read replay %q: %w", path, err)
	}
	return session, nil
}

// ReadReplay декодирует формат ARRP.
func ReadReplay(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidReplay, string(header.Magic[:]))
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalidReplay, header.Version, Version1)
	}

	battleID := make([]byte, header.BattleIDLen)
	if _, err := io.ReadFull(r, battleID); err != nil {
		return nil, fmt.Errorf("failed to read battle id: %w", err)
	}

	session := &domain.ReplaySession{
		BattleID:  string(battleID),
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, header.ActionCount),
	}

	// 2. Команды
	for i := uint32(0); i < header.ActionCount; i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Turn:    int(ah.Turn),
			Actor:   domain.CombatantID(ah.Actor),
			Command: domain.CommandType(ah.Command),
			Payload: json.RawMessage{},
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		}
		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
