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

// Package objfile reads and writes the three artefacts a successful
// assembly produces: the object file, the entry-symbol manifest, and
// the external-reference manifest.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/halfbit/quadasm/pkg/assembler"
	"github.com/halfbit/quadasm/pkg/encoding"
	"github.com/halfbit/quadasm/pkg/machine"
)

// Object is the in-memory form of a .ob file: a header word count pair
// plus every emitted word, code and data together, ascending by
// address.
type Object struct {
	InstructionWords uint16
	DataWords        uint16
	Words            []assembler.Word
}

// NewObject builds an Object from a completed assembly result.
func NewObject(result *assembler.Result) *Object {
	words := make([]assembler.Word, len(result.Words))
	copy(words, result.Words)
	sort.Slice(words, func(i, j int) bool { return words[i].Address < words[j].Address })

	return &Object{
		InstructionWords: result.Space.InstructionWordCount(),
		DataWords:        result.Space.DataWords,
		Words:            words,
	}
}

// WriteOb writes the .ob artefact: a header line of stripped base-4
// word counts, followed by one "<address>\t<word>" line per emitted
// word, both rendered in full 5-digit base-4.
func WriteOb(w io.Writer, obj *Object) error {
	bw := bufio.NewWriter(w)

	header := fmt.Sprintf("%s %s\n",
		encoding.StripLeadingA(encoding.Digits(obj.InstructionWords)),
		encoding.StripLeadingA(encoding.Digits(obj.DataWords)),
	)
	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	for _, word := range obj.Words {
		line := fmt.Sprintf("%s\t%s\n", encoding.Digits(word.Address), word.Digits)
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// EntryRecords returns every entry symbol eligible for the .ent
// manifest, in symbol-table order. A symbol below MemoryStart cannot
// happen by construction (FirstPass already rejects unresolved
// entries), but the guard is kept because output_files.c carries the
// same belt-and-braces check.
func EntryRecords(symbols *assembler.SymbolTable) []assembler.Symbol {
	var out []assembler.Symbol
	for _, sym := range symbols.All() {
		bound, ok := sym.Entry.(assembler.EntryBoundTo)
		if !ok || bound.Address < machine.MemoryStart {
			continue
		}
		out = append(out, *sym)
	}
	return out
}

// WriteEnt writes the .ent artefact. Returns wrote=false, with w left
// untouched, if there are no eligible entries: the caller should not
// create the file at all.
func WriteEnt(w io.Writer, symbols *assembler.SymbolTable) (wrote bool, err error) {
	records := EntryRecords(symbols)
	if len(records) == 0 {
		return false, nil
	}

	bw := bufio.NewWriter(w)
	for _, sym := range records {
		bound := sym.Entry.(assembler.EntryBoundTo)
		line := fmt.Sprintf("%s %s\n", sym.Name, encoding.Digits(bound.Address))
		if _, err := bw.WriteString(line); err != nil {
			return true, err
		}
	}
	return true, bw.Flush()
}

// ExternalUsage is one recorded reference to an external symbol.
type ExternalUsage struct {
	Name    string
	Address uint16
}

// ExternalUsages returns every usage of every external symbol, in
// symbol-table order and then usage order, matching the order the
// second pass recorded them.
func ExternalUsages(symbols *assembler.SymbolTable) []ExternalUsage {
	var out []ExternalUsage
	for _, sym := range symbols.All() {
		if sym.Type != assembler.SymbolExternal {
			continue
		}
		for _, addr := range sym.Usages {
			out = append(out, ExternalUsage{Name: sym.Name, Address: addr})
		}
	}
	return out
}

// WriteExt writes the .ext artefact. Returns wrote=false if no external
// symbol was referenced anywhere in the unit.
func WriteExt(w io.Writer, symbols *assembler.SymbolTable) (wrote bool, err error) {
	usages := ExternalUsages(symbols)
	if len(usages) == 0 {
		return false, nil
	}

	bw := bufio.NewWriter(w)
	for _, u := range usages {
		line := fmt.Sprintf("%s %s\n", u.Name, encoding.Digits(u.Address))
		if _, err := bw.WriteString(line); err != nil {
			return true, err
		}
	}
	return true, bw.Flush()
}

// ReadOb parses a .ob artefact back into an Object, for the inspector.
func ReadOb(r io.Reader) (*Object, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("objfile: empty object file")
	}

	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("objfile: malformed header line %q", scanner.Text())
	}
	icWords, err := decodeCount(header[0])
	if err != nil {
		return nil, fmt.Errorf("objfile: instruction count: %w", err)
	}
	dcWords, err := decodeCount(header[1])
	if err != nil {
		return nil, fmt.Errorf("objfile: data count: %w", err)
	}

	obj := &Object{InstructionWords: icWords, DataWords: dcWords}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("objfile: malformed word line %q", line)
		}
		addr, err := decodeAddress(fields[0])
		if err != nil {
			return nil, fmt.Errorf("objfile: address: %w", err)
		}
		obj.Words = append(obj.Words, assembler.Word{Address: addr, Digits: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeCount(field string) (uint16, error) {
	return DecodeBase4(field)
}

func decodeAddress(field string) (uint16, error) {
	return DecodeBase4(field)
}

// DecodeBase4 parses a string of a/b/c/d digits into its integer value,
// most-significant digit first. Exported for callers such as the
// inspector that need to read a raw .ent/.ext address field without a
// full object-file parse.
func DecodeBase4(s string) (uint16, error) {
	var v uint16
	for _, r := range s {
		d, ok := digitValue(byte(r))
		if !ok {
			return 0, fmt.Errorf("invalid base-4 digit %q in %q", r, s)
		}
		v = v<<2 | uint16(d)
	}
	return v, nil
}

func digitValue(b byte) (int, bool) {
	switch b {
	case 'a':
		return 0, true
	case 'b':
		return 1, true
	case 'c':
		return 2, true
	case 'd':
		return 3, true
	default:
		return 0, false
	}
}
