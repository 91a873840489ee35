package cpu

import (
	"errors"
	"fmt"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// ErrUnsupportedAddressing is returned when an instruction tries to resolve
// a memory operand for an addressing mode that does not have one. This is a
// programming error in the instruction table, not a runtime condition.
var ErrUnsupportedAddressing = errors.New("unsupported addressing mode")

// effectiveAddress computes the address the current instruction operates on.
// The program counter points at the first operand byte and is left
// untouched, handlers advance it by the operand size of their mode.
//
// Indexing wraps at the width of the intermediate value: the zero page
// indexed modes and the indirect pointer calculations add with 8 bit
// wraparound before widening, the absolute indexed modes and the final
// indirect Y addition wrap at 16 bit. This reproduces the page boundary
// behavior of the hardware and must not be changed.
func (c *CPU) effectiveAddress(mode m6502.AddressingMode) (uint16, error) {
	switch mode {
	case m6502.ImmediateAddressing:
		// the operand byte itself is the value, no dereferencing
		return c.PC, nil

	case m6502.ZeroPageAddressing:
		return uint16(c.Read(c.PC)), nil

	case m6502.ZeroPageXAddressing:
		return uint16(c.Read(c.PC) + c.X), nil

	case m6502.ZeroPageYAddressing:
		return uint16(c.Read(c.PC) + c.Y), nil

	case m6502.AbsoluteAddressing:
		return c.ReadWord(c.PC), nil

	case m6502.AbsoluteXAddressing:
		return c.ReadWord(c.PC) + uint16(c.X), nil

	case m6502.AbsoluteYAddressing:
		return c.ReadWord(c.PC) + uint16(c.Y), nil

	case m6502.IndirectXAddressing:
		pointer := uint16(c.Read(c.PC) + c.X)
		lo := uint16(c.Read(pointer))
		hi := uint16(c.Read(pointer + 1))
		return hi<<8 | lo, nil

	case m6502.IndirectYAddressing:
		// the pointer high byte read wraps within the zero page
		pointer := c.Read(c.PC)
		lo := uint16(c.Read(uint16(pointer)))
		hi := uint16(c.Read(uint16(pointer + 1)))
		return (hi<<8 | lo) + uint16(c.Y), nil

	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedAddressing, mode)
	}
}

// operandSize returns the number of operand bytes that an instruction with
// the given addressing mode consumes after the opcode byte.
func operandSize(mode m6502.AddressingMode) uint16 {
	switch mode {
	case m6502.ImmediateAddressing,
		m6502.ZeroPageAddressing, m6502.ZeroPageXAddressing, m6502.ZeroPageYAddressing,
		m6502.IndirectXAddressing, m6502.IndirectYAddressing:
		return 1

	case m6502.AbsoluteAddressing, m6502.AbsoluteXAddressing, m6502.AbsoluteYAddressing:
		return 2

	default:
		return 0
	}
}
