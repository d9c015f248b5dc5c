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

// Package inspector is an interactive browser over an already-assembled
// object file: it pages through code and data words, annotating each
// address with any label the caller bound to it (entries from a .ent
// manifest, or every local symbol from a .qsym snapshot; externals are
// never bound to an address). It has
// no execution model; nothing in an object file ever runs here.
package inspector

import (
	"fmt"
	"io"
	"sort"

	"github.com/halfbit/quadasm/pkg/assembler"
	"github.com/halfbit/quadasm/pkg/machine"
	"github.com/halfbit/quadasm/pkg/objfile"
)

// Browser holds the state of one inspection session.
type Browser struct {
	Object *objfile.Object
	Space  machine.AddressSpace
	Labels map[uint16]string

	RowsPerPage int
	page        int
}

// NewBrowser builds a Browser from a parsed object file plus any
// address-to-name bindings recovered from a .ent manifest.
func NewBrowser(obj *objfile.Object, labels map[uint16]string, rowsPerPage int) *Browser {
	if rowsPerPage <= 0 {
		rowsPerPage = 20
	}
	return &Browser{
		Object:      obj,
		Space:       machine.NewAddressSpace(machine.MemoryStart+obj.InstructionWords, obj.DataWords),
		Labels:      labels,
		RowsPerPage: rowsPerPage,
	}
}

// LabelsFromEntries builds an address-to-name map from entry records,
// for annotating the browser's output.
func LabelsFromEntries(symbols *assembler.SymbolTable) map[uint16]string {
	labels := make(map[uint16]string)
	for _, sym := range objfile.EntryRecords(symbols) {
		labels[sym.Address] = sym.Name
	}
	return labels
}

func (b *Browser) PageCount() int {
	return b.Space.PageCount(b.RowsPerPage)
}

func (b *Browser) Page() int {
	return b.page
}

func (b *Browser) NextPage() bool {
	if b.page+1 >= b.PageCount() {
		return false
	}
	b.page++
	return true
}

func (b *Browser) PrevPage() bool {
	if b.page == 0 {
		return false
	}
	b.page--
	return true
}

// JumpToAddress moves to whichever page contains addr, reporting false
// if addr falls outside the unit's occupied range.
func (b *Browser) JumpToAddress(addr uint16) bool {
	if !b.Space.InCodeRegion(addr) && !b.Space.InDataRegion(addr) {
		return false
	}
	offset := int(addr - machine.MemoryStart)
	b.page = offset / b.RowsPerPage
	return true
}

// JumpToLabel moves to the page containing name's bound address.
func (b *Browser) JumpToLabel(name string) bool {
	for addr, label := range b.Labels {
		if label == name {
			return b.JumpToAddress(addr)
		}
	}
	return false
}

// CurrentRows returns the words on the current page, sorted ascending
// by address.
func (b *Browser) CurrentRows() []assembler.Word {
	words := append([]assembler.Word(nil), b.Object.Words...)
	sort.Slice(words, func(i, j int) bool { return words[i].Address < words[j].Address })

	start := b.page * b.RowsPerPage
	end := start + b.RowsPerPage
	if start >= len(words) {
		return nil
	}
	if end > len(words) {
		end = len(words)
	}
	return words[start:end]
}

// Render writes the current page to w in the bold-address,
// dimmed-zero-word style.
func (b *Browser) Render(w io.Writer, colorize bool) {
	for _, row := range b.CurrentRows() {
		region := "code"
		if b.Space.InDataRegion(row.Address) {
			region = "data"
		}

		label := b.Labels[row.Address]
		if colorize {
			if label != "" {
				fmt.Fprintf(w, "\033[1m[%05d]\033[0m %s \033[1;30m%s\033[0m \033[36m%s\033[0m\n", row.Address, dim(colorize, row.Digits), region, label)
				continue
			}
			fmt.Fprintf(w, "\033[1m[%05d]\033[0m %s \033[1;30m%s\033[0m\n", row.Address, dim(colorize, row.Digits), region)
			continue
		}

		if label != "" {
			fmt.Fprintf(w, "[%05d] %s %s %s\n", row.Address, row.Digits, region, label)
			continue
		}
		fmt.Fprintf(w, "[%05d] %s %s\n", row.Address, row.Digits, region)
	}
}

func dim(colorize bool, digits string) string {
	if colorize && allZero(digits) {
		return "\033[1;30m" + digits + "\033[0m"
	}
	return digits
}

func allZero(digits string) bool {
	for _, r := range digits {
		if r != 'a' {
			return false
		}
	}
	return true
}
