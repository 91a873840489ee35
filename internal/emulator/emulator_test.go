package emulator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/nesgoemu/internal/cpu"
	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(file, data, 0o644))
	return file
}

func TestRunRawProgram(t *testing.T) {
	file := createTempFile(t, "program.bin", []byte{0xA9, 0x05, 0xAA, 0xE8, 0x00})
	emu := New(log.NewTestLogger(t))

	opts := options.Program{
		Parameters: options.Parameters{Input: file},
	}
	assert.NoError(t, emu.Run(context.Background(), opts))

	assert.Equal(t, uint8(0x05), emu.CPU().A)
	assert.Equal(t, uint8(0x06), emu.CPU().X)
}

func TestRunINESROM(t *testing.T) {
	// minimal valid NES ROM, header plus one 16 KB PRG bank
	rom := make([]byte, 16+16384)
	copy(rom[0:4], inesMagic)
	rom[4] = 1 // 1 PRG bank
	copy(rom[16:], []byte{0xA9, 0x42, 0x00})

	file := createTempFile(t, "program.nes", rom)
	emu := New(log.NewTestLogger(t))

	opts := options.Program{
		Parameters: options.Parameters{Input: file},
		Flags:      options.Flags{Quiet: true},
	}
	assert.NoError(t, emu.Run(context.Background(), opts))

	assert.Equal(t, uint8(0x42), emu.CPU().A)
}

func TestRunUnknownOpcodeFailsRun(t *testing.T) {
	file := createTempFile(t, "program.bin", []byte{0x69, 0x01, 0x00}) // adc is not implemented
	emu := New(log.NewTestLogger(t))

	err := emu.Run(context.Background(), options.Program{
		Parameters: options.Parameters{Input: file},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrUnknownOpcode))
}

func TestRunMissingFile(t *testing.T) {
	emu := New(log.NewTestLogger(t))

	err := emu.Run(context.Background(), options.Program{
		Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.bin")},
	})

	assert.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	file := createTempFile(t, "program.bin", []byte{0x00})
	emu := New(log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx, options.Program{
		Parameters: options.Parameters{Input: file},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
