package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ExecutePayload) Validate() error {
	if p.ActionIndex < 0 {
		return errors.New("actionIndex cannot be negative")
	}
	if p.X < 0 || p.Y < 0 {
		return errors.New("target cell cannot have negative coordinates")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot have negative coordinates")
	}
	return nil
}

func (c ClientCommand) Validate() error {
	if c.Token == "" {
		return errors.New("token is required")
	}
	if c.Battle == "" {
		return errors.New("battle is required")
	}
	return nil
}
