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

package objfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/halfbit/quadasm/pkg/assembler"
	"github.com/halfbit/quadasm/pkg/encoding"
)

// WriteQSym writes the .qsym debug snapshot: every symbol the unit
// defined, not just its entries, so the inspector can annotate an
// address with any label bound to it, not only ones exported via
// .entry.
func WriteQSym(w io.Writer, symbols *assembler.SymbolTable) error {
	bw := bufio.NewWriter(w)
	for _, sym := range symbols.All() {
		if sym.Type == assembler.SymbolExternal {
			continue
		}
		line := fmt.Sprintf("%s %s %s\n", sym.Name, encoding.Digits(sym.Address), sym.Type)
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadQSym parses a .qsym snapshot into an address-to-name map for the
// inspector. A malformed or missing file is not fatal to the caller; it
// simply yields fewer labels than a full snapshot would.
func ReadQSym(r io.Reader) (map[uint16]string, error) {
	labels := make(map[uint16]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		addr, err := DecodeBase4(fields[1])
		if err != nil {
			continue
		}
		labels[addr] = fields[0]
	}
	return labels, scanner.Err()
}
