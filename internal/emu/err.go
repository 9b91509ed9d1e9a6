package emu

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

var (
	ErrNoProgram        = errors.New(translate.From("no program loaded"))
	ErrSnapshotMismatch = errors.New(translate.From("snapshot belongs to another program"))
	ErrSnapshotCorrupt  = errors.New(translate.From("snapshot corrupt"))
)
