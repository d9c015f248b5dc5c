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

package machine_test

import (
	"testing"

	"github.com/halfbit/quadasm/pkg/machine"
)

type regionCase struct {
	Name      string
	Space     machine.AddressSpace
	Addr      uint16
	WantCode  bool
	WantData  bool
}

func TestAddressSpaceRegions(t *testing.T) {
	tests := []regionCase{
		{
			Name:     "first code address",
			Space:    machine.NewAddressSpace(101, 1),
			Addr:     100,
			WantCode: true,
		},
		{
			Name:     "last code address",
			Space:    machine.NewAddressSpace(105, 2),
			Addr:     104,
			WantCode: true,
		},
		{
			Name:     "address equal to FinalIC is data, not code",
			Space:    machine.NewAddressSpace(105, 2),
			Addr:     105,
			WantData: true,
		},
		{
			Name:     "first data address",
			Space:    machine.NewAddressSpace(101, 3),
			Addr:     101,
			WantData: true,
		},
		{
			Name:     "last data address",
			Space:    machine.NewAddressSpace(101, 3),
			Addr:     103,
			WantData: true,
		},
		{
			Name:  "address past the data segment is neither",
			Space: machine.NewAddressSpace(101, 3),
			Addr:  104,
		},
		{
			Name:  "address below MemoryStart is neither",
			Space: machine.NewAddressSpace(150, 0),
			Addr:  99,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := test.Space.InCodeRegion(test.Addr); got != test.WantCode {
				t.Fatalf("InCodeRegion(%d)\n\twant:%v\n\thave:%v", test.Addr, test.WantCode, got)
			}
			if got := test.Space.InDataRegion(test.Addr); got != test.WantData {
				t.Fatalf("InDataRegion(%d)\n\twant:%v\n\thave:%v", test.Addr, test.WantData, got)
			}
		})
	}
}

func TestInstructionWordCount(t *testing.T) {
	space := machine.NewAddressSpace(105, 0)
	if got := space.InstructionWordCount(); got != 5 {
		t.Fatalf("InstructionWordCount()\n\twant:%d\n\thave:%d", 5, got)
	}
}

func TestDataAddress(t *testing.T) {
	// Scenario 4 from the testable-properties scenarios: a single
	// one-word instruction (stop) followed by one data word.
	space := machine.NewAddressSpace(101, 1)

	if got := space.DataAddress(0); got != 101 {
		t.Fatalf("DataAddress(0)\n\twant:%d\n\thave:%d", 101, got)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		Name        string
		Space       machine.AddressSpace
		RowsPerPage int
		Want        int
	}{
		{"empty unit", machine.NewAddressSpace(machine.MemoryStart, 0), 10, 0},
		{"exact multiple", machine.NewAddressSpace(machine.MemoryStart+10, 10), 10, 2},
		{"remainder rounds up", machine.NewAddressSpace(machine.MemoryStart+5, 2), 4, 2},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := test.Space.PageCount(test.RowsPerPage); got != test.Want {
				t.Fatalf("PageCount(%d)\n\twant:%d\n\thave:%d", test.RowsPerPage, test.Want, got)
			}
		})
	}
}
