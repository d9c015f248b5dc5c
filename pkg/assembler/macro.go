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

import "strings"

// ExpandMacros reads source lines, collects mcro/mcroend definitions,
// and rewrites every call to a defined macro into its body, producing
// the text that is written out as the unit's .am file.
func ExpandMacros(u *Unit, lines []string) []string {
	macros := make(map[string]*Macro)

	var current *Macro
	var definedAt []Pos

	var stripped []string

	for i, raw := range lines {
		lineNo := i + 1
		pos := Pos{File: u.Name, Line: lineNo}
		fields := strings.Fields(raw)

		if len(fields) == 0 {
			stripped = append(stripped, raw)
			continue
		}

		if fields[0] == "mcro" {
			if current != nil {
				u.Fail(&NestedMacroError{Pos: pos})
				continue
			}
			if len(fields) < 2 {
				u.Fail(&InvalidLabelError{Pos: pos, Name: ""})
				continue
			}
			name := fields[1]
			if len(fields) > 2 {
				u.Fail(&TrailingTextError{Pos: pos})
			}
			if len(name) > MaxSymbolLength {
				u.Fail(&NameTooLongError{Pos: pos, Name: name})
				continue
			}
			if !validLabelSyntax(name) {
				u.Fail(&InvalidLabelError{Pos: pos, Name: name})
				continue
			}
			if reservedWords[name] {
				u.Fail(&ReservedWordError{Pos: pos, Name: name})
				continue
			}
			if _, exists := macros[name]; exists {
				u.Fail(&DuplicateMacroError{Pos: pos, Name: name})
				continue
			}
			current = &Macro{Name: name}
			definedAt = append(definedAt, pos)
			continue
		}

		if fields[0] == "mcroend" {
			if current == nil {
				u.Fail(&UnmatchedMacroEndError{Pos: pos})
				continue
			}
			if len(fields) > 1 {
				u.Fail(&TrailingTextError{Pos: pos})
			}
			macros[current.Name] = current
			current = nil
			continue
		}

		if current != nil {
			current.Body = append(current.Body, raw)
			continue
		}

		if m, ok := macros[fields[0]]; ok {
			stripped = append(stripped, m.Body...)
			continue
		}

		if label, call, ok := splitCallLabel(raw); ok {
			callFields := strings.Fields(call)
			if len(callFields) > 0 {
				if m, ok := macros[callFields[0]]; ok {
					stripped = append(stripped, fuseLabel(label, m.Body)...)
					continue
				}
			}
		}

		stripped = append(stripped, raw)
	}

	if current != nil {
		pos := definedAt[len(definedAt)-1]
		u.Fail(&DanglingMacroError{Pos: pos, Name: current.Name})
	}

	return stripped
}

// splitCallLabel splits a line of the form "label: rest" into its label
// and the text after the colon, the same shape a macro call takes when
// written on a labelled line. It reports ok=false for any line with no
// colon, or whose text before the colon is not a single token.
func splitCallLabel(line string) (label, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return "", "", false
	}
	candidate := trimmed[:colon]
	if candidate == "" || strings.ContainsAny(candidate, " \t") {
		return "", "", false
	}
	return candidate, trimmed[colon+1:], true
}

// fuseLabel juxtaposes a label carried on a macro call with the macro's
// first body line, so the label still resolves to the address of the
// macro's first expanded instruction.
func fuseLabel(label string, body []string) []string {
	if len(body) == 0 {
		return []string{label + ":"}
	}
	out := make([]string, len(body))
	out[0] = label + ": " + strings.TrimLeft(body[0], " \t")
	copy(out[1:], body[1:])
	return out
}
