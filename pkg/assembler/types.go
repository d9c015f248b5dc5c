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

// Package assembler implements the two-pass assembler: macro expansion,
// first pass (symbol collection and length accounting) and second pass
// (bit-exact word encoding).
package assembler

// EntryState tracks how far an entry symbol's binding has progressed. A
// symbol can be declared .entry before its local definition appears in
// the source, so the placeholder/bound split is explicit rather than
// overloading address zero.
type EntryState interface {
	isEntryState()
}

// EntryPlaceholder marks a symbol declared .entry whose local address is
// not yet known.
type EntryPlaceholder struct{}

func (EntryPlaceholder) isEntryState() {}

// EntryBoundTo marks a symbol declared .entry whose local address has
// been resolved.
type EntryBoundTo struct {
	Address uint16
}

func (EntryBoundTo) isEntryState() {}

// Symbol is one entry in the unit's symbol table.
type Symbol struct {
	Name    string
	Type    SymbolType
	Address uint16
	Defined Pos

	// Entry is non-nil only for symbols also declared .entry.
	Entry EntryState

	// Usages records, in source order, the address of every operand word
	// that references an external symbol. Populated by the second pass.
	Usages []uint16
}

// Operand is one parsed instruction operand.
type Operand struct {
	Mode Mode
	Pos  Pos

	// Immediate holds the literal value when Mode == ModeImmediate.
	Immediate int

	// Label holds the referenced symbol name when Mode == ModeDirect or
	// ModeMatrix.
	Label string

	// Row and Col hold the index registers when Mode == ModeMatrix.
	Row, Col int

	// Register holds the register number when Mode == ModeRegister.
	Register int
}

// Instruction is one assembled instruction, already length-accounted by
// the first pass but not yet encoded.
type Instruction struct {
	Pos      Pos
	Label    string
	Mnemonic string
	Src      *Operand
	Dest     *Operand
	Address  uint16
}

// Length reports how many words this instruction occupies: the opcode
// word, plus one word per operand (two for a matrix operand), collapsing
// two bare registers into a single shared word.
func (in *Instruction) Length() int {
	n := 1
	switch {
	case in.Src != nil && in.Dest != nil:
		if in.Src.Mode == ModeRegister && in.Dest.Mode == ModeRegister {
			n++
		} else {
			n += operandWords(in.Src) + operandWords(in.Dest)
		}
	case in.Src != nil:
		n += operandWords(in.Src)
	case in.Dest != nil:
		n += operandWords(in.Dest)
	}
	return n
}

func operandWords(op *Operand) int {
	if op.Mode == ModeMatrix {
		return 2
	}
	return 1
}

// DataItem is one word produced by .data, .string, or .mat. Offset
// starts as a pass-1 index into the data segment and is rewritten to an
// absolute address once FinalIC is known.
type DataItem struct {
	Pos    Pos
	Value  int
	Offset uint16
}

// Macro is one mcro/mcroend definition collected before the first pass.
type Macro struct {
	Name string
	Body []string
}

// Unit is the per-file assembly context: its own symbol table,
// instruction and data lists, and error flag, so that one file's
// failure never contaminates another's state.
type Unit struct {
	Name string

	// Expanded holds the macro-expanded source text, set as soon as
	// macro expansion succeeds, independent of whether later stages
	// fail. The .am artefact is written from this field regardless of
	// the unit's ultimate outcome.
	Expanded string

	Symbols      *SymbolTable
	Instructions []*Instruction
	Data         []*DataItem

	FinalIC uint16
	FinalDC uint16

	Errors   []PositionedError
	Warnings []string
}

func NewUnit(name string) *Unit {
	return &Unit{
		Name:    name,
		Symbols: NewSymbolTable(),
	}
}

func (u *Unit) Fail(err PositionedError) {
	u.Errors = append(u.Errors, err)
}

func (u *Unit) Failed() bool {
	return len(u.Errors) > 0
}

func (u *Unit) Warn(msg string) {
	u.Warnings = append(u.Warnings, msg)
}
