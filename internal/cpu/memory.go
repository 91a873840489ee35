package cpu

// Read returns the byte stored at the given address. The 64 KiB address
// space covers every representable address, reads can not fail.
func (c *CPU) Read(address uint16) byte {
	return c.memory[address]
}

// Write stores the value at the given address.
func (c *CPU) Write(address uint16, value byte) {
	c.memory[address] = value
}

// ReadWord reads a little endian word starting at the given address.
// The high byte of a word at 0xFFFF wraps around to address 0x0000.
func (c *CPU) ReadWord(address uint16) uint16 {
	lo := uint16(c.Read(address))
	hi := uint16(c.Read(address + 1))
	return hi<<8 | lo
}

// WriteWord writes a little endian word starting at the given address.
// The high byte of a word at 0xFFFF wraps around to address 0x0000.
func (c *CPU) WriteWord(address, value uint16) {
	c.Write(address, byte(value))
	c.Write(address+1, byte(value>>8))
}
