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

import (
	"strings"

	"github.com/halfbit/quadasm/pkg/machine"
)

// Result is everything a successfully assembled unit produces: the
// macro-expanded source text, the encoded words, and the symbol table
// needed to write .ent/.ext and to drive the inspector.
type Result struct {
	Expanded string
	Words    []Word
	Symbols  *SymbolTable
	Space    machine.AddressSpace
}

// Assemble runs the full macro-expansion, first-pass, second-pass
// pipeline over one source file's lines. name identifies the unit for
// diagnostics (normally the base file name, without extension).
//
// If the unit fails at any stage, Assemble still returns a non-nil
// *Unit carrying every accumulated error; callers must check
// u.Failed() before relying on a returned Result.
func Assemble(name string, source string) (*Unit, *Result) {
	u := NewUnit(name)

	lines := strings.Split(source, "\n")
	expanded := ExpandMacros(u, lines)
	if u.Failed() {
		return u, nil
	}
	u.Expanded = strings.Join(expanded, "\n")

	FirstPass(u, expanded)
	if u.Failed() {
		return u, nil
	}

	words := SecondPass(u)
	if u.Failed() {
		return u, nil
	}

	return u, &Result{
		Expanded: strings.Join(expanded, "\n"),
		Words:    words,
		Symbols:  u.Symbols,
		Space:    machine.NewAddressSpace(u.FinalIC, u.FinalDC),
	}
}
