// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import "github.com/halfbit/quadasm/pkg/machine"

const (
	MaxLineLength   = 80
	MaxSymbolLength = 30

	MemoryStart = machine.MemoryStart
)

// SymbolType classifies what a Symbol refers to.
type SymbolType uint

const (
	SymbolCode SymbolType = iota
	SymbolData
	SymbolExternal
	SymbolEntry
)

func (t SymbolType) String() string {
	switch t {
	case SymbolCode:
		return "code"
	case SymbolData:
		return "data"
	case SymbolExternal:
		return "external"
	case SymbolEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Mode tags the addressing mode of a parsed operand.
type Mode uint

const (
	ModeImmediate Mode = iota
	ModeDirect
	ModeMatrix
	ModeRegister
)

// mnemonics is the complete, fixed instruction set. Order matches the
// opcode's two-digit base-4 code (see pkg/encoding).
var mnemonics = []string{
	"mov", "cmp", "add", "sub", "not", "clr", "lea", "inc",
	"dec", "jmp", "bne", "red", "prn", "jsr", "rts", "stop",
}

// directives is every directive keyword recognised by the first pass.
var directives = []string{".data", ".string", ".mat", ".extern", ".entry"}

// reservedWords may not be used as a symbol or macro name.
var reservedWords = map[string]bool{
	"mcro": true, "mcroend": true,
}

func init() {
	for _, m := range mnemonics {
		reservedWords[m] = true
	}
	for _, d := range directives {
		reservedWords[d] = true
	}
}

// IsOpcode reports whether s is one of the sixteen recognised mnemonics.
func IsOpcode(s string) bool {
	for _, m := range mnemonics {
		if s == m {
			return true
		}
	}
	return false
}

// IsRegister reports whether s is a register name r0-r7.
func IsRegister(s string) bool {
	if len(s) != 2 || s[0] != 'r' {
		return false
	}
	return s[1] >= '0' && s[1] <= '7'
}

// RegisterNumber parses a validated register name into its number.
func RegisterNumber(s string) int {
	return int(s[1] - '0')
}

// legalModes gives, per opcode, the set of legal modes for the
// source and destination operand slots. A nil set means the slot must be
// absent.
type legalModes struct {
	src  []Mode
	dest []Mode
}

var allModes = []Mode{ModeImmediate, ModeDirect, ModeMatrix, ModeRegister}
var noImmediate = []Mode{ModeDirect, ModeMatrix, ModeRegister}
var labelOnly = []Mode{ModeDirect, ModeMatrix}

var opcodeLegality = map[string]legalModes{
	"mov": {src: allModes, dest: noImmediate},
	"add": {src: allModes, dest: noImmediate},
	"sub": {src: allModes, dest: noImmediate},
	"cmp": {src: allModes, dest: allModes},
	"lea": {src: labelOnly, dest: noImmediate},
	"not": {dest: noImmediate},
	"clr": {dest: noImmediate},
	"inc": {dest: noImmediate},
	"dec": {dest: noImmediate},
	"red": {dest: noImmediate},
	"jmp": {dest: labelOnly},
	"bne": {dest: labelOnly},
	"jsr": {dest: labelOnly},
	"prn": {dest: allModes},
	"rts": {},
	"stop": {},
}

// OperandArity reports how many operands the opcode takes (0, 1, or 2).
func OperandArity(mnemonic string) int {
	legal, ok := opcodeLegality[mnemonic]
	if !ok {
		return -1
	}
	n := 0
	if legal.src != nil {
		n++
	}
	if legal.dest != nil {
		n++
	}
	return n
}

// srcModeLegal reports whether mode is legal in the source slot for mnemonic.
func srcModeLegal(mnemonic string, mode Mode) bool {
	return modeIn(opcodeLegality[mnemonic].src, mode)
}

func destModeLegal(mnemonic string, mode Mode) bool {
	return modeIn(opcodeLegality[mnemonic].dest, mode)
}

func modeIn(set []Mode, mode Mode) bool {
	for _, m := range set {
		if m == mode {
			return true
		}
	}
	return false
}
