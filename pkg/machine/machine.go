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

package machine

// InstructionWordCount is the number of instruction words the unit
// emitted: FinalIC minus MemoryStart. This is the value written into the
// object file's header line, distinct from FinalIC itself.
func (a AddressSpace) InstructionWordCount() uint16 {
	return a.FinalIC - MemoryStart
}

// DataBase is the first address occupied by a relocated data word.
func (a AddressSpace) DataBase() uint16 {
	return a.FinalIC
}

// DataAddress resolves a data item's pass-1 offset (0-based, in units of
// words from the start of the data section) to its final absolute
// address.
func (a AddressSpace) DataAddress(offset uint16) uint16 {
	return a.DataBase() + offset
}

// InCodeRegion reports whether addr falls within the unit's code segment.
func (a AddressSpace) InCodeRegion(addr uint16) bool {
	return addr >= MemoryStart && addr < a.FinalIC
}

// InDataRegion reports whether addr falls within the unit's (relocated)
// data segment.
func (a AddressSpace) InDataRegion(addr uint16) bool {
	base := a.DataBase()
	return addr >= base && addr < base+a.DataWords
}

// PageCount partitions the unit's full occupied range (code followed by
// data) into fixed-size rows of addresses, for a pager that can only show
// a handful of addresses at a time. Used by the object-file inspector.
func (a AddressSpace) PageCount(rowsPerPage int) int {
	total := int(a.InstructionWordCount()) + int(a.DataWords)
	if rowsPerPage <= 0 || total == 0 {
		return 0
	}
	pages := total / rowsPerPage
	if total%rowsPerPage != 0 {
		pages++
	}
	return pages
}
