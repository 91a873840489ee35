// Package emulator drives the 6502 execution core with a program image.
package emulator

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/retroenv/nesgoemu/internal/cpu"
	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// iNES file magic, "NES" followed by the MS-DOS end of file marker.
var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Emulator loads a program image into the execution core and runs it
// until the break opcode halts the machine.
type Emulator struct {
	logger *log.Logger
	cpu    *cpu.CPU
}

// New returns an emulator with a freshly constructed machine.
func New(logger *log.Logger) *Emulator {
	return &Emulator{
		logger: logger,
		cpu:    cpu.New(logger),
	}
}

// CPU returns the machine the emulator drives.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Run reads the program image from the input file and executes it to
// completion. The run loop itself is uninterruptible, the context is only
// checked before execution starts.
func (e *Emulator) Run(ctx context.Context, opts options.Program) error {
	program, err := e.readProgram(opts)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("aborted before execution: %w", err)
	}

	if err := e.cpu.LoadAndRun(program); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	e.printState(opts)
	return nil
}

// readProgram returns the program bytes of the input file. An iNES ROM is
// parsed by the cartridge loader and its PRG image is used, anything else
// is treated as a raw program image.
func (e *Emulator) readProgram(opts options.Program) ([]byte, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", opts.Input, err)
	}

	if opts.Binary || !bytes.HasPrefix(data, inesMagic) {
		return data, nil
	}

	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading cartridge: %w", err)
	}
	return cart.PRG, nil
}

func (e *Emulator) printState(opts options.Program) {
	if opts.Quiet {
		return
	}

	e.logger.Info("Program halted",
		log.String("a", fmt.Sprintf("0x%02X", e.cpu.A)),
		log.String("x", fmt.Sprintf("0x%02X", e.cpu.X)),
		log.String("y", fmt.Sprintf("0x%02X", e.cpu.Y)),
		log.String("status", fmt.Sprintf("0b%08b", e.cpu.Status)),
		log.String("pc", fmt.Sprintf("0x%04X", e.cpu.PC)),
	)
}
