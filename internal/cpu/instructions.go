package cpu

import m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"

// handlers maps an instruction name from the m6502 opcode table to its
// implementation. The execution loop decodes the opcode byte through
// m6502.Opcodes and looks the instruction up here, supporting a new
// instruction means adding one entry without touching the loop.
var handlers = map[string]func(*CPU, m6502.AddressingMode) error{
	m6502.BrkInst.Name: (*CPU).brk,
	m6502.InxInst.Name: (*CPU).inx,
	m6502.LdaInst.Name: (*CPU).lda,
	m6502.LdxInst.Name: (*CPU).ldx,
	m6502.LdyInst.Name: (*CPU).ldy,
	m6502.StaInst.Name: (*CPU).sta,
	m6502.TaxInst.Name: (*CPU).tax,
}

// operand resolves the effective address for the given addressing mode and
// advances the program counter past the operand bytes.
func (c *CPU) operand(mode m6502.AddressingMode) (uint16, error) {
	address, err := c.effectiveAddress(mode)
	if err != nil {
		return 0, err
	}
	c.PC += operandSize(mode)
	return address, nil
}

// lda loads a byte from memory into the accumulator.
func (c *CPU) lda(mode m6502.AddressingMode) error {
	address, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.A = c.Read(address)
	c.setZeroNegative(c.A)
	return nil
}

// ldx loads a byte from memory into the X register.
func (c *CPU) ldx(mode m6502.AddressingMode) error {
	address, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.X = c.Read(address)
	c.setZeroNegative(c.X)
	return nil
}

// ldy loads a byte from memory into the Y register.
func (c *CPU) ldy(mode m6502.AddressingMode) error {
	address, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.Y = c.Read(address)
	c.setZeroNegative(c.Y)
	return nil
}

// sta stores the accumulator in memory, flags are not affected.
func (c *CPU) sta(mode m6502.AddressingMode) error {
	address, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.Write(address, c.A)
	return nil
}

// tax copies the accumulator into the X register.
func (c *CPU) tax(_ m6502.AddressingMode) error {
	c.X = c.A
	c.setZeroNegative(c.X)
	return nil
}

// inx increments the X register, wrapping from 0xFF to 0x00.
func (c *CPU) inx(_ m6502.AddressingMode) error {
	c.X++
	c.setZeroNegative(c.X)
	return nil
}

// brk halts the execution loop, registers, flags and memory are left as is.
func (c *CPU) brk(_ m6502.AddressingMode) error {
	c.halted = true
	return nil
}

// setZeroNegative updates the zero and negative flags from an instruction
// result. All other status bits keep their value, each instruction that the
// hardware documents as flag affecting calls this explicitly.
func (c *CPU) setZeroNegative(value uint8) {
	if value == 0 {
		c.Status |= FlagZero
	} else {
		c.Status &^= FlagZero
	}

	if value&FlagNegative != 0 {
		c.Status |= FlagNegative
	} else {
		c.Status &^= FlagNegative
	}
}
