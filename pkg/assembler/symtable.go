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

// SymbolTable holds every symbol a unit declares, in insertion order. A
// bare map would not preserve that order, and the .ext writer and the
// external-usage list both depend on source-order iteration.
type SymbolTable struct {
	order []string
	byName map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// All returns every symbol in the table in insertion order.
func (t *SymbolTable) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

func (t *SymbolTable) insert(sym *Symbol) {
	if _, exists := t.byName[sym.Name]; !exists {
		t.order = append(t.order, sym.Name)
	}
	t.byName[sym.Name] = sym
}

// DefineLocal records a code or data symbol's first local definition.
// It reports a conflict error, leaving the table unchanged, if the name
// collides with an existing definition or an external declaration.
func (t *SymbolTable) DefineLocal(name string, kind SymbolType, address uint16, pos Pos) PositionedError {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Type: kind, Address: address, Defined: pos})
		return nil
	}

	switch existing.Type {
	case SymbolExternal:
		return &ExternalRedefinedError{Pos: pos, Name: name}
	case SymbolEntry:
		// Forward .entry declaration: bind it to its first local
		// definition, promoting it to a code/data symbol while
		// preserving the entry marking.
		existing.Type = kind
		existing.Address = address
		existing.Defined = pos
		existing.Entry = EntryBoundTo{Address: address}
		return nil
	default:
		return &RedeclaredLabelError{Pos: pos, Name: name, Previous: existing.Defined}
	}
}

// DeclareExternal records a .extern declaration. A repeated declaration
// of the same external symbol is accepted silently; declaring a name
// already defined locally, or already declared .entry, is an error.
func (t *SymbolTable) DeclareExternal(name string, pos Pos) PositionedError {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Type: SymbolExternal, Defined: pos})
		return nil
	}

	switch existing.Type {
	case SymbolExternal:
		return nil
	case SymbolEntry:
		return &EntryExternalConflictError{Pos: pos, Name: name}
	default:
		return &ExternalRedefinedError{Pos: pos, Name: name}
	}
}

// DeclareEntry records a .entry declaration. If the symbol is not yet
// known, it is inserted with an EntryPlaceholder; a later DefineLocal
// binds it. Declaring .entry on a name already external is an error.
func (t *SymbolTable) DeclareEntry(name string, pos Pos) PositionedError {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Type: SymbolEntry, Defined: pos, Entry: EntryPlaceholder{}})
		return nil
	}

	if existing.Type == SymbolExternal {
		return &EntryExternalConflictError{Pos: pos, Name: name}
	}
	if existing.Entry == nil {
		existing.Entry = EntryBoundTo{Address: existing.Address}
	}
	return nil
}

// RecordExternalUse appends the address of a referencing operand word to
// an external symbol's usage list, in the order the second pass encounters them.
func (t *SymbolTable) RecordExternalUse(name string, address uint16) {
	sym, ok := t.byName[name]
	if !ok || sym.Type != SymbolExternal {
		return
	}
	sym.Usages = append(sym.Usages, address)
}

// RelocateData shifts every data symbol's address by base, the number of
// words the code segment ultimately occupies plus MemoryStart. Called
// once at the end of the first pass, after FinalIC is known.
func (t *SymbolTable) RelocateData(base uint16) {
	for _, sym := range t.byName {
		if sym.Type == SymbolData {
			sym.Address += base
			if _, ok := sym.Entry.(EntryBoundTo); ok {
				sym.Entry = EntryBoundTo{Address: sym.Address}
			}
		}
	}
}

// UndefinedEntries returns every symbol declared .entry but never given
// a local definition.
func (t *SymbolTable) UndefinedEntries() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		sym := t.byName[name]
		if _, placeholder := sym.Entry.(EntryPlaceholder); placeholder {
			out = append(out, sym)
		}
	}
	return out
}
