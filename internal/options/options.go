// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string // program image to execute, raw binary or iNES ROM
}

// Flags contains behavior options.
type Flags struct {
	Binary bool // treat input as raw binary even if it carries an iNES header
	Debug  bool // enable per instruction trace logging
	Quiet  bool // quiet mode
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}
