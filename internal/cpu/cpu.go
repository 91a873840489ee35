// Package cpu implements the instruction execution core of the MOS 6502.
package cpu

import (
	"errors"
	"fmt"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/log"
)

// Status flag bits of the processor status register. The remaining bits
// (carry, overflow, interrupt disable, decimal, break) exist on the real
// hardware but are not driven by any implemented instruction yet.
const (
	FlagNegative = 0b1000_0000
	FlagZero     = 0b0000_0010
)

// memorySize covers every address representable by a uint16.
const memorySize = 0x10000

var (
	// ErrUnknownOpcode is returned when the program counter points at a byte
	// that does not decode to an instruction the emulator can execute.
	// Unknown opcodes fail the run instead of being skipped, otherwise the
	// machine state would silently diverge from a real hardware trace.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrProgramTooLarge is returned when a program image does not fit into
	// the address space at the code base address.
	ErrProgramTooLarge = errors.New("program too large")
)

// CPU models the 6502 registers, the status flags, the program counter and
// the flat 64 KiB address space. The register fields are exported, callers
// and tests inspect them after a run and set them up before one.
//
// A CPU is owned by a single goroutine, none of its methods are safe for
// concurrent use.
type CPU struct {
	A      uint8 // accumulator
	X      uint8
	Y      uint8
	Status uint8
	PC     uint16

	memory [memorySize]byte
	halted bool
	logger *log.Logger
}

// New returns a CPU with all registers, flags and memory zeroed.
func New(logger *log.Logger) *CPU {
	return &CPU{
		logger: logger,
	}
}

// Load copies the program into memory at the code base address and points
// the reset vector at it. Memory outside the copied range is not touched.
// If the image does not fit below the top of the address space, no memory
// is modified and an error is returned.
func (c *CPU) Load(program []byte) error {
	base := uint16(nes.CodeBaseAddress)
	if len(program) > memorySize-int(base) {
		return fmt.Errorf("%w: %d bytes do not fit at 0x%04X",
			ErrProgramTooLarge, len(program), base)
	}

	copy(c.memory[base:], program)
	c.WriteWord(m6502.ResetAddress, base)
	return nil
}

// Reset clears the accumulator, the X register and the status flags and
// loads the program counter from the reset vector. The Y register and the
// memory contents keep their values across a reset.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Status = 0
	c.PC = c.ReadWord(m6502.ResetAddress)
	c.halted = false
}

// Step fetches, decodes and executes a single instruction and reports
// whether the machine has halted. Stepping a halted machine is a no-op
// until Reset is called.
func (c *CPU) Step() (bool, error) {
	if c.halted {
		return true, nil
	}

	pc := c.PC
	opcode := c.Read(pc)
	c.PC++

	op := m6502.Opcodes[opcode]
	if op.Instruction == nil {
		return false, fmt.Errorf("%w: 0x%02X at address 0x%04X", ErrUnknownOpcode, opcode, pc)
	}
	handler, ok := handlers[op.Instruction.Name]
	if !ok {
		return false, fmt.Errorf("%w: 0x%02X (%s) at address 0x%04X",
			ErrUnknownOpcode, opcode, op.Instruction.Name, pc)
	}

	c.trace(pc, opcode, op)

	if err := handler(c, op.Addressing); err != nil {
		return false, fmt.Errorf("executing %s: %w", op.Instruction.Name, err)
	}
	return c.halted, nil
}

// Run executes instructions until a break opcode halts the machine.
// A program that never reaches a break runs forever, the loop does not
// impose a bound that the hardware does not have.
func (c *CPU) Run() error {
	for {
		halted, err := c.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// LoadAndRun loads the program, resets the machine and runs it until it halts.
func (c *CPU) LoadAndRun(program []byte) error {
	if err := c.Load(program); err != nil {
		return err
	}
	c.Reset()
	return c.Run()
}

func (c *CPU) trace(pc uint16, opcode byte, op m6502.Opcode) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("Executing instruction",
		log.String("pc", fmt.Sprintf("0x%04X", pc)),
		log.String("opcode", fmt.Sprintf("0x%02X", opcode)),
		log.String("instruction", op.Instruction.Name),
	)
}
