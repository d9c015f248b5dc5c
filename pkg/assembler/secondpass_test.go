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

func TestSecondPassStopWord(t *testing.T) {
	u := assembler.NewUnit("t")
	assembler.FirstPass(u, []string{"MAIN: stop"})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	words := assembler.SecondPass(u)
	if u.Failed() {
		t.Fatalf("SecondPass errors: %v", u.Errors)
	}
	if len(words) != 1 {
		t.Fatalf("word count\n\twant:%d\n\thave:%d", 1, len(words))
	}
	if words[0].Address != 100 || words[0].Digits != "ddaaa" {
		t.Fatalf("stop word\n\twant:{100 ddaaa}\n\thave:%+v", words[0])
	}
}

func TestSecondPassExternalUsage(t *testing.T) {
	u := assembler.NewUnit("t")
	assembler.FirstPass(u, []string{
		".extern EXTF",
		"MAIN: jsr EXTF",
		"stop",
	})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	words := assembler.SecondPass(u)
	if u.Failed() {
		t.Fatalf("SecondPass errors: %v", u.Errors)
	}

	want := []assembler.Word{
		{Address: 100, Digits: "dbaba"},
		{Address: 101, Digits: "aaaab"},
		{Address: 102, Digits: "ddaaa"},
	}
	if len(words) != len(want) {
		t.Fatalf("word count\n\twant:%d\n\thave:%d\n\t%+v", len(want), len(words), words)
	}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word[%d]\n\twant:%+v\n\thave:%+v", i, w, words[i])
		}
	}

	sym, ok := u.Symbols.Lookup("EXTF")
	if !ok {
		t.Fatalf("symbol EXTF not found")
	}
	if len(sym.Usages) != 1 || sym.Usages[0] != 101 {
		t.Fatalf("EXTF usages\n\twant:[101]\n\thave:%v", sym.Usages)
	}
}

func TestSecondPassUnknownLabel(t *testing.T) {
	u := assembler.NewUnit("t")
	assembler.FirstPass(u, []string{"jmp GHOST"})
	if u.Failed() {
		t.Fatalf("FirstPass errors: %v", u.Errors)
	}
	assembler.SecondPass(u)
	if !u.Failed() {
		t.Fatalf("SecondPass\n\twant:unknown label error\n\thave:no error")
	}
	if _, ok := u.Errors[0].(*assembler.UnknownLabelError); !ok {
		t.Fatalf("SecondPass error\n\twant:*UnknownLabelError\n\thave:%T", u.Errors[0])
	}
}

func TestAssembleFullUnit(t *testing.T) {
	source := "MAIN: mov #5, r1\nstop\n"
	u, result := assembler.Assemble("t", source)
	if u.Failed() {
		t.Fatalf("Assemble errors: %v", u.Errors)
	}
	if result == nil {
		t.Fatalf("Assemble\n\twant:non-nil result\n\thave:nil")
	}
	if len(result.Words) != 4 {
		t.Fatalf("word count\n\twant:%d\n\thave:%d", 4, len(result.Words))
	}
	if result.Space.FinalIC != 104 {
		t.Fatalf("FinalIC\n\twant:%d\n\thave:%d", 104, result.Space.FinalIC)
	}
}
