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

import "github.com/halfbit/quadasm/pkg/encoding"

// Word is one fully encoded five-digit base-4 word at a fixed address.
type Word struct {
	Address uint16
	Digits  string
}

// SecondPass resolves every label reference left unresolved by the
// first pass and encodes every instruction and data item into its final
// base-4 word form. Unit.Errors accumulates any symbol it cannot
// resolve; callers must check Unit.Failed before trusting the result.
func SecondPass(u *Unit) []Word {
	var words []Word

	for _, in := range u.Instructions {
		words = append(words, encodeInstruction(u, in)...)
	}
	for _, d := range u.Data {
		words = append(words, Word{Address: d.Offset, Digits: encoding.Encode(d.Value)})
	}

	return words
}

func encodeInstruction(u *Unit, in *Instruction) []Word {
	addr := in.Address
	srcMode, destMode := operandModeDigit(in.Src), operandModeDigit(in.Dest)

	out := []Word{{Address: addr, Digits: encoding.OpcodeWord(in.Mnemonic, srcMode, destMode)}}
	addr++

	if in.Src != nil && in.Dest != nil && in.Src.Mode == ModeRegister && in.Dest.Mode == ModeRegister {
		out = append(out, Word{Address: addr, Digits: encoding.SharedRegisterWord(in.Src.Register, in.Dest.Register)})
		return out
	}

	if in.Src != nil {
		words, next := encodeOperand(u, in.Src, addr, true)
		out = append(out, words...)
		addr = next
	}
	if in.Dest != nil {
		words, _ := encodeOperand(u, in.Dest, addr, false)
		out = append(out, words...)
	}

	return out
}

func operandModeDigit(op *Operand) byte {
	if op == nil {
		return encoding.ModeImmediate
	}
	switch op.Mode {
	case ModeImmediate:
		return encoding.ModeImmediate
	case ModeDirect:
		return encoding.ModeDirect
	case ModeMatrix:
		return encoding.ModeMatrix
	case ModeRegister:
		return encoding.ModeRegister
	default:
		return encoding.ModeImmediate
	}
}

// encodeOperand emits the word(s) for one operand and returns the
// address immediately following them.
func encodeOperand(u *Unit, op *Operand, addr uint16, isSource bool) ([]Word, uint16) {
	switch op.Mode {
	case ModeImmediate:
		return []Word{{Address: addr, Digits: encoding.ImmediateWord(op.Immediate)}}, addr + 1

	case ModeRegister:
		return []Word{{Address: addr, Digits: encoding.RegisterWord(op.Register, isSource)}}, addr + 1

	case ModeDirect:
		sym, are, ok := resolveSymbol(u, op, addr)
		if !ok {
			return nil, addr + 1
		}
		return []Word{{Address: addr, Digits: encoding.AddressWord(sym, are)}}, addr + 1

	case ModeMatrix:
		sym, are, ok := resolveSymbol(u, op, addr)
		var words []Word
		if ok {
			words = append(words, Word{Address: addr, Digits: encoding.AddressWord(sym, are)})
		}
		words = append(words, Word{Address: addr + 1, Digits: encoding.MatrixIndexWord(op.Row, op.Col)})
		return words, addr + 2
	}

	return nil, addr + 1
}

// resolveSymbol looks up a direct/matrix operand's label, recording an
// external use if applicable, and reports the address to encode plus
// the ARE digit to tag it with.
func resolveSymbol(u *Unit, op *Operand, addr uint16) (address uint16, are byte, ok bool) {
	sym, found := u.Symbols.Lookup(op.Label)
	if !found {
		u.Fail(&UnknownLabelError{Pos: op.Pos, Name: op.Label})
		return 0, 0, false
	}

	if sym.Type == SymbolExternal {
		u.Symbols.RecordExternalUse(op.Label, addr)
		return 0, encoding.AREExternal, true
	}

	return sym.Address, encoding.ARERelocatable, true
}
