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

// Package encoding converts between signed integers and the five-digit
// base-4 word format used by the target machine. A word is ten bits wide;
// the alphabet a=0, b=1, c=2, d=3 renders each two-bit digit.
package encoding

import (
	"fmt"
	"strings"
)

const (
	WordMask  = 0x3FF
	MinValue  = -512
	MaxValue  = 511
	WordWidth = 5

	AREAbsolute    byte = 'a'
	AREExternal    byte = 'b'
	ARERelocatable byte = 'c'

	ModeImmediate byte = 'a'
	ModeDirect    byte = 'b'
	ModeMatrix    byte = 'c'
	ModeRegister  byte = 'd'
)

var digitAlphabet = [4]byte{'a', 'b', 'c', 'd'}

// opcodeCodes maps each of the sixteen mnemonics to its two-digit base-4
// code. Order and values follow the machine's fixed instruction table.
var opcodeCodes = map[string]string{
	"mov":  "aa",
	"cmp":  "ab",
	"add":  "ac",
	"sub":  "ad",
	"not":  "ba",
	"clr":  "bb",
	"lea":  "bc",
	"inc":  "bd",
	"dec":  "ca",
	"jmp":  "cb",
	"bne":  "cc",
	"red":  "cd",
	"prn":  "da",
	"jsr":  "db",
	"rts":  "dc",
	"stop": "dd",
}

// Digits renders an unsigned value already known to fit in ten bits as
// five base-4 digits, most significant first.
func Digits(v uint16) string {
	v &= WordMask

	var out [WordWidth]byte
	for i := WordWidth - 1; i >= 0; i-- {
		out[i] = digitAlphabet[v&0x3]
		v >>= 2
	}

	return string(out[:])
}

// Encode masks a signed value to ten bits (two's-complement) and renders
// it as a five-digit base-4 word. Values outside [MinValue, MaxValue] are
// a programmer error: the caller must range-check before calling Encode.
func Encode(value int) string {
	return Digits(uint16(value) & WordMask)
}

// StripLeadingA removes leading zero digits ('a') from a rendered word,
// always leaving at least one digit behind.
func StripLeadingA(s string) string {
	stripped := strings.TrimLeft(s, "a")
	if stripped == "" {
		return "a"
	}
	return stripped
}

// OpcodeDigits looks up the two-digit base-4 code for a mnemonic. The
// second return value is false for an unrecognised mnemonic; callers must
// have already validated the opcode during parsing, so this is only ever
// consulted after that check has passed.
func OpcodeDigits(mnemonic string) (string, bool) {
	code, ok := opcodeCodes[mnemonic]
	return code, ok
}

// RegisterDigits renders a register number (0-7) as two base-4 digits.
func RegisterDigits(reg int) string {
	if reg < 0 || reg > 7 {
		panic(fmt.Sprintf("encoding: register out of range: %d", reg))
	}
	return string([]byte{digitAlphabet[reg/4], digitAlphabet[reg%4]})
}

// OpcodeWord composes the opcode word: two opcode digits, source mode
// digit, destination mode digit, and the ARE digit (always absolute for
// the opcode word itself).
func OpcodeWord(mnemonic string, srcMode, destMode byte) string {
	code, ok := OpcodeDigits(mnemonic)
	if !ok {
		panic(fmt.Sprintf("encoding: unknown mnemonic %q", mnemonic))
	}
	return code + string(srcMode) + string(destMode) + string(AREAbsolute)
}

// ImmediateWord renders a signed immediate as a ten-bit two's-complement
// word and keeps its upper four digits (the top eight bits), with the
// absolute ARE digit as the final digit. The value's own
// least-significant base-4 digit is not kept.
func ImmediateWord(value int) string {
	return Encode(value)[:4] + string(AREAbsolute)
}

// RegisterWord encodes a single register operand: the register number
// occupies bits 9-6 if it is the source operand, bits 5-2 if it is the
// destination operand; all other value bits are zero; ARE is absolute.
func RegisterWord(reg int, isSource bool) string {
	digits := RegisterDigits(reg)
	if isSource {
		return digits + "aa" + string(AREAbsolute)
	}
	return "aa" + digits + string(AREAbsolute)
}

// SharedRegisterWord encodes the case where both operands of an
// instruction are bare registers: they share a single word, source in
// bits 9-6 and destination in bits 5-2.
func SharedRegisterWord(srcReg, destReg int) string {
	return RegisterDigits(srcReg) + RegisterDigits(destReg) + string(AREAbsolute)
}

// AddressWord encodes a resolved symbol's address: the address's own
// base-4 rendering supplies the top four digits, and the ARE digit
// supplied by the caller (external or relocatable, depending on the
// symbol's type) replaces what would otherwise be the address's own
// least-significant digit.
func AddressWord(address uint16, are byte) string {
	return Digits(address)[:4] + string(are)
}

// MatrixIndexWord encodes a matrix's row/column index-register pair: row
// in bits 9-6, column in bits 5-2, ARE absolute. This is always the
// regular bit layout; the machine has no special-cased register pairs.
func MatrixIndexWord(rowReg, colReg int) string {
	return RegisterDigits(rowReg) + RegisterDigits(colReg) + string(AREAbsolute)
}
