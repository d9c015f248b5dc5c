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

package assembler_test

import (
	"testing"

	"github.com/halfbit/quadasm/pkg/assembler"
)

func runFirstPass(t *testing.T, lines []string) *assembler.Unit {
	t.Helper()
	u := assembler.NewUnit("t")
	assembler.FirstPass(u, lines)
	return u
}

func TestFirstPassInstructionLengths(t *testing.T) {
	u := runFirstPass(t, []string{
		"MAIN: mov r1, r2",
		"add #5, r3",
		"jmp MAIN",
		"stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	if len(u.Instructions) != 4 {
		t.Fatalf("instruction count\n\twant:%d\n\thave:%d", 4, len(u.Instructions))
	}

	// mov r1, r2: both bare registers share one word plus the opcode word.
	if got := u.Instructions[0].Length(); got != 2 {
		t.Fatalf("mov r1,r2 length\n\twant:%d\n\thave:%d", 2, got)
	}
	// add #5, r3: opcode word, immediate word, register word.
	if got := u.Instructions[1].Length(); got != 3 {
		t.Fatalf("add #5,r3 length\n\twant:%d\n\thave:%d", 3, got)
	}
	// jmp MAIN: direct label + opcode word.
	if got := u.Instructions[2].Length(); got != 2 {
		t.Fatalf("jmp MAIN length\n\twant:%d\n\thave:%d", 2, got)
	}
	// stop: opcode word alone.
	if got := u.Instructions[3].Length(); got != 1 {
		t.Fatalf("stop length\n\twant:%d\n\thave:%d", 1, got)
	}

	wantFinalIC := uint16(100 + 2 + 3 + 2 + 1)
	if u.FinalIC != wantFinalIC {
		t.Fatalf("FinalIC\n\twant:%d\n\thave:%d", wantFinalIC, u.FinalIC)
	}
}

func TestFirstPassDataRelocation(t *testing.T) {
	u := runFirstPass(t, []string{
		"stop",
		"NUM: .data 7, 8, 9",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}

	sym, ok := u.Symbols.Lookup("NUM")
	if !ok {
		t.Fatalf("symbol NUM not found")
	}
	if sym.Address != u.FinalIC {
		t.Fatalf("NUM address\n\twant:%d\n\thave:%d", u.FinalIC, sym.Address)
	}
	if len(u.Data) != 3 {
		t.Fatalf("data item count\n\twant:%d\n\thave:%d", 3, len(u.Data))
	}
	if u.Data[0].Offset != u.FinalIC {
		t.Fatalf("data[0] address\n\twant:%d\n\thave:%d", u.FinalIC, u.Data[0].Offset)
	}
}

func TestFirstPassMatrixDimensions(t *testing.T) {
	u := runFirstPass(t, []string{
		"M: .mat [2][2] 1, 2, 3, 4",
		"stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	if len(u.Data) != 4 {
		t.Fatalf("matrix data count\n\twant:%d\n\thave:%d", 4, len(u.Data))
	}
}

func TestFirstPassMatrixExcessInitializersWarns(t *testing.T) {
	u := runFirstPass(t, []string{
		"M: .mat [2][2] 1, 2, 3, 4, 5, 6",
		"stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	if len(u.Warnings) != 1 {
		t.Fatalf("warning count\n\twant:%d\n\thave:%d\n\t%v", 1, len(u.Warnings), u.Warnings)
	}
	if len(u.Data) != 4 {
		t.Fatalf("matrix data count\n\twant:%d\n\thave:%d", 4, len(u.Data))
	}
}

func TestFirstPassLabelledExternWarns(t *testing.T) {
	u := runFirstPass(t, []string{
		"L: .extern FOO",
		"stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	if len(u.Warnings) != 1 {
		t.Fatalf("warning count\n\twant:%d\n\thave:%d\n\t%v", 1, len(u.Warnings), u.Warnings)
	}
}

func TestFirstPassLabelledEntryWarns(t *testing.T) {
	u := runFirstPass(t, []string{
		"L: .entry FOO",
		"FOO: stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	if len(u.Warnings) != 1 {
		t.Fatalf("warning count\n\twant:%d\n\thave:%d\n\t%v", 1, len(u.Warnings), u.Warnings)
	}
}

func TestFirstPassNameTooLong(t *testing.T) {
	long := "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDE"
	u := runFirstPass(t, []string{long + ": stop"})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:name too long error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.NameTooLongError); !ok {
		t.Fatalf("FirstPass error\n\twant:*NameTooLongError\n\thave:%T", u.Errors[0])
	}
}

func TestFirstPassDuplicateLabel(t *testing.T) {
	u := runFirstPass(t, []string{
		"LOOP: stop",
		"LOOP: stop",
	})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:redeclared label error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.RedeclaredLabelError); !ok {
		t.Fatalf("FirstPass error\n\twant:*RedeclaredLabelError\n\thave:%T", u.Errors[0])
	}
}

func TestFirstPassWrongOperandCount(t *testing.T) {
	u := runFirstPass(t, []string{"stop r1"})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:operand count error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.OperandCountError); !ok {
		t.Fatalf("FirstPass error\n\twant:*OperandCountError\n\thave:%T", u.Errors[0])
	}
}

func TestFirstPassIllegalAddressingMode(t *testing.T) {
	u := runFirstPass(t, []string{"mov r1, #5"})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:illegal addressing mode error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.IllegalAddressingModeError); !ok {
		t.Fatalf("FirstPass error\n\twant:*IllegalAddressingModeError\n\thave:%T", u.Errors[0])
	}
}

func TestFirstPassEntryNeverDefined(t *testing.T) {
	u := runFirstPass(t, []string{
		".entry GHOST",
		"stop",
	})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:entry not defined error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.EntryNotDefinedError); !ok {
		t.Fatalf("FirstPass error\n\twant:*EntryNotDefinedError\n\thave:%T", u.Errors[0])
	}
}

func TestFirstPassLineTooLong(t *testing.T) {
	long := make([]byte, assembler.MaxLineLength+1)
	for i := range long {
		long[i] = 'a'
	}
	u := runFirstPass(t, []string{string(long)})
	if !u.Failed() {
		t.Fatalf("FirstPass\n\twant:line too long error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.LineTooLongError); !ok {
		t.Fatalf("FirstPass error\n\twant:*LineTooLongError\n\thave:%T", u.Errors[0])
	}
}
