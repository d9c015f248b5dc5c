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

package encoding_test

import (
	"testing"

	"github.com/halfbit/quadasm/pkg/encoding"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		Name  string
		Value uint16
		Want  string
	}{
		{"zero", 0, "aaaaa"},
		{"one", 1, "aaaab"},
		{"four", 4, "aaaba"},
		{"max positive", 511, "bdddd"},
		{"all ones", 0x3FF, "ddddd"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := encoding.Digits(test.Value); got != test.Want {
				t.Fatalf("Digits(%d)\n\twant:%s\n\thave:%s", test.Value, test.Want, got)
			}
		})
	}
}

func TestEncodeNegative(t *testing.T) {
	// -1 in ten-bit two's complement is 0x3FF, all digits 'd'.
	if got := encoding.Encode(-1); got != "ddddd" {
		t.Fatalf("Encode(-1)\n\twant:%s\n\thave:%s", "ddddd", got)
	}
}

func TestStripLeadingA(t *testing.T) {
	tests := []struct {
		In, Want string
	}{
		{"aaaab", "b"},
		{"aaaaa", "a"},
		{"baaaa", "baaaa"},
		{"", "a"},
	}

	for _, test := range tests {
		if got := encoding.StripLeadingA(test.In); got != test.Want {
			t.Fatalf("StripLeadingA(%q)\n\twant:%s\n\thave:%s", test.In, test.Want, got)
		}
	}
}

func TestOpcodeWord(t *testing.T) {
	got := encoding.OpcodeWord("mov", encoding.ModeImmediate, encoding.ModeDirect)
	want := "aaaba"
	if got != want {
		t.Fatalf("OpcodeWord(mov)\n\twant:%s\n\thave:%s", want, got)
	}
}

func TestImmediateWord(t *testing.T) {
	tests := []struct {
		Value int
		Want  string
	}{
		{0, "aaaaa"},
		{511, "bddda"},
		{-1, "dddda"},
	}

	for _, test := range tests {
		if got := encoding.ImmediateWord(test.Value); got != test.Want {
			t.Fatalf("ImmediateWord(%d)\n\twant:%s\n\thave:%s", test.Value, test.Want, got)
		}
	}
}

func TestRegisterDigits(t *testing.T) {
	tests := []struct {
		Reg  int
		Want string
	}{
		{0, "aa"}, {1, "ab"}, {2, "ac"}, {3, "ad"},
		{4, "ba"}, {5, "bb"}, {6, "bc"}, {7, "bd"},
	}

	for _, test := range tests {
		if got := encoding.RegisterDigits(test.Reg); got != test.Want {
			t.Fatalf("RegisterDigits(%d)\n\twant:%s\n\thave:%s", test.Reg, test.Want, got)
		}
	}
}

func TestRegisterDigitsPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("RegisterDigits(8) did not panic")
		}
	}()
	encoding.RegisterDigits(8)
}

func TestRegisterWord(t *testing.T) {
	if got := encoding.RegisterWord(3, true); got != "adaaa" {
		t.Fatalf("RegisterWord(3, source)\n\twant:%s\n\thave:%s", "adaaa", got)
	}
	if got := encoding.RegisterWord(3, false); got != "aaada" {
		t.Fatalf("RegisterWord(3, dest)\n\twant:%s\n\thave:%s", "aaada", got)
	}
}

func TestSharedRegisterWord(t *testing.T) {
	if got := encoding.SharedRegisterWord(2, 5); got != "acbba" {
		t.Fatalf("SharedRegisterWord(2, 5)\n\twant:%s\n\thave:%s", "acbba", got)
	}
}

func TestAddressWord(t *testing.T) {
	// Address 100 in base-4 is 1210 -> digits a,b,c,b,a; the top four are
	// kept and the ARE digit replaces the fifth.
	got := encoding.AddressWord(100, encoding.ARERelocatable)
	want := encoding.Digits(100)[:4] + "c"
	if got != want {
		t.Fatalf("AddressWord(100, relocatable)\n\twant:%s\n\thave:%s", want, got)
	}
}

func TestMatrixIndexWord(t *testing.T) {
	if got := encoding.MatrixIndexWord(1, 2); got != "abaca" {
		t.Fatalf("MatrixIndexWord(1, 2)\n\twant:%s\n\thave:%s", "abaca", got)
	}
}
