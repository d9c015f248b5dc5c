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

const (
	// MemoryStart is the first address an assembled unit may occupy. The
	// addresses below it are reserved by convention and never emitted.
	MemoryStart uint16 = 100

	// WordBits is the width of a single machine word.
	WordBits = 10

	// AddressSpaceSize is the number of distinct ten-bit addresses.
	AddressSpaceSize = 1 << WordBits
)
