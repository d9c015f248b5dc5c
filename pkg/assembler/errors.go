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

import "fmt"

// Pos locates a diagnostic within a source file.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// PositionedError is the interface every diagnostic in this package
// satisfies, so a driver can locate and print any of them uniformly.
type PositionedError interface {
	error
	Position() Pos
}

// LineTooLongError reports a source line past MaxLineLength characters.
type LineTooLongError struct {
	Pos    Pos
	Length int
}

func (e *LineTooLongError) Position() Pos { return e.Pos }
func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("%s: line too long\n\twant:<=%d\n\thave:%d", e.Pos, MaxLineLength, e.Length)
}

// MalformedNumberError reports a numeric literal that failed to parse.
type MalformedNumberError struct {
	Pos  Pos
	Text string
}

func (e *MalformedNumberError) Position() Pos { return e.Pos }
func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("%s: malformed number\n\thave:%q", e.Pos, e.Text)
}

// UnterminatedStringError reports a .string directive missing its closing
// quote.
type UnterminatedStringError struct {
	Pos Pos
}

func (e *UnterminatedStringError) Position() Pos { return e.Pos }
func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("%s: unterminated string literal", e.Pos)
}

// InvalidOperandError reports an operand that does not parse as any known
// addressing mode.
type InvalidOperandError struct {
	Pos  Pos
	Text string
}

func (e *InvalidOperandError) Position() Pos { return e.Pos }
func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("%s: invalid operand\n\thave:%q", e.Pos, e.Text)
}

// ReservedWordError reports a reserved word used where a symbol or macro
// name is required.
type ReservedWordError struct {
	Pos  Pos
	Name string
}

func (e *ReservedWordError) Position() Pos { return e.Pos }
func (e *ReservedWordError) Error() string {
	return fmt.Sprintf("%s: reserved word used as name\n\thave:%q", e.Pos, e.Name)
}

// InvalidLabelError reports a label that fails the naming grammar (must
// start with a letter, alphanumeric thereafter).
type InvalidLabelError struct {
	Pos  Pos
	Name string
}

func (e *InvalidLabelError) Position() Pos { return e.Pos }
func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("%s: invalid label syntax\n\thave:%q", e.Pos, e.Name)
}

// NameTooLongError reports a label or macro name past MaxSymbolLength.
type NameTooLongError struct {
	Pos  Pos
	Name string
}

func (e *NameTooLongError) Position() Pos { return e.Pos }
func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("%s: name too long\n\twant:<=%d\n\thave:%d", e.Pos, MaxSymbolLength, len(e.Name))
}

// NestedMacroError reports a mcro definition started before the previous
// one closed.
type NestedMacroError struct {
	Pos Pos
}

func (e *NestedMacroError) Position() Pos { return e.Pos }
func (e *NestedMacroError) Error() string {
	return fmt.Sprintf("%s: nested macro definition", e.Pos)
}

// DuplicateMacroError reports a mcro name already defined earlier in the
// unit.
type DuplicateMacroError struct {
	Pos  Pos
	Name string
}

func (e *DuplicateMacroError) Position() Pos { return e.Pos }
func (e *DuplicateMacroError) Error() string {
	return fmt.Sprintf("%s: macro already defined\n\thave:%q", e.Pos, e.Name)
}

// TrailingTextError reports extra tokens after a mcro/mcroend line.
type TrailingTextError struct {
	Pos Pos
}

func (e *TrailingTextError) Position() Pos { return e.Pos }
func (e *TrailingTextError) Error() string {
	return fmt.Sprintf("%s: unexpected text after directive", e.Pos)
}

// DanglingMacroError reports a mcro definition never closed by mcroend.
type DanglingMacroError struct {
	Pos  Pos
	Name string
}

func (e *DanglingMacroError) Position() Pos { return e.Pos }
func (e *DanglingMacroError) Error() string {
	return fmt.Sprintf("%s: macro %q never closed\n\twant:mcroend", e.Pos, e.Name)
}

// UnmatchedMacroEndError reports a mcroend with no open mcro.
type UnmatchedMacroEndError struct {
	Pos Pos
}

func (e *UnmatchedMacroEndError) Position() Pos { return e.Pos }
func (e *UnmatchedMacroEndError) Error() string {
	return fmt.Sprintf("%s: mcroend without matching mcro", e.Pos)
}

// RedeclaredLabelError reports a label defined more than once.
type RedeclaredLabelError struct {
	Pos      Pos
	Name     string
	Previous Pos
}

func (e *RedeclaredLabelError) Position() Pos { return e.Pos }
func (e *RedeclaredLabelError) Error() string {
	return fmt.Sprintf("%s: symbol already defined\n\thave:%q\n\tfirst defined at:%s", e.Pos, e.Name, e.Previous)
}

// EntryExternalConflictError reports a symbol declared both .entry and
// .extern.
type EntryExternalConflictError struct {
	Pos  Pos
	Name string
}

func (e *EntryExternalConflictError) Position() Pos { return e.Pos }
func (e *EntryExternalConflictError) Error() string {
	return fmt.Sprintf("%s: symbol both entry and external\n\thave:%q", e.Pos, e.Name)
}

// ExternalRedefinedError reports a symbol already declared external being
// given a local definition.
type ExternalRedefinedError struct {
	Pos  Pos
	Name string
}

func (e *ExternalRedefinedError) Position() Pos { return e.Pos }
func (e *ExternalRedefinedError) Error() string {
	return fmt.Sprintf("%s: external symbol redefined locally\n\thave:%q", e.Pos, e.Name)
}

// UnknownLabelError reports a reference to a label never defined anywhere
// in the unit.
type UnknownLabelError struct {
	Pos  Pos
	Name string
}

func (e *UnknownLabelError) Position() Pos { return e.Pos }
func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("%s: undefined symbol\n\thave:%q", e.Pos, e.Name)
}

// EntryNotDefinedError reports a symbol declared .entry but never given a
// local definition anywhere in the unit.
type EntryNotDefinedError struct {
	Pos  Pos
	Name string
}

func (e *EntryNotDefinedError) Position() Pos { return e.Pos }
func (e *EntryNotDefinedError) Error() string {
	return fmt.Sprintf("%s: entry symbol never defined\n\thave:%q", e.Pos, e.Name)
}

// OperandCountError reports the wrong number of operands for an opcode.
type OperandCountError struct {
	Pos      Pos
	Mnemonic string
	Want     int
	Have     int
}

func (e *OperandCountError) Position() Pos { return e.Pos }
func (e *OperandCountError) Error() string {
	return fmt.Sprintf("%s: wrong operand count for %q\n\twant:%d\n\thave:%d", e.Pos, e.Mnemonic, e.Want, e.Have)
}

// IllegalAddressingModeError reports an operand whose addressing mode is
// not legal in its slot for the given opcode.
type IllegalAddressingModeError struct {
	Pos      Pos
	Mnemonic string
	Slot     string
}

func (e *IllegalAddressingModeError) Position() Pos { return e.Pos }
func (e *IllegalAddressingModeError) Error() string {
	return fmt.Sprintf("%s: illegal addressing mode for %s operand of %q", e.Pos, e.Slot, e.Mnemonic)
}

// OversizedLiteralError reports an immediate or .data value outside the
// representable signed range.
type OversizedLiteralError struct {
	Pos   Pos
	Value int
}

func (e *OversizedLiteralError) Position() Pos { return e.Pos }
func (e *OversizedLiteralError) Error() string {
	return fmt.Sprintf("%s: value out of range\n\twant:[-512,511]\n\thave:%d", e.Pos, e.Value)
}

// InvalidMatrixError reports a malformed .mat dimension pair or a matrix
// operand whose index registers do not parse.
type InvalidMatrixError struct {
	Pos  Pos
	Text string
}

func (e *InvalidMatrixError) Position() Pos { return e.Pos }
func (e *InvalidMatrixError) Error() string {
	return fmt.Sprintf("%s: invalid matrix syntax\n\thave:%q", e.Pos, e.Text)
}
