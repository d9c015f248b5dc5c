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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/halfbit/quadasm/pkg/machine"
)

// FirstPass walks the macro-expanded source, builds the symbol table and
// the instruction/data lists, and computes FinalIC/FinalDC. Instructions
// are left unencoded; the second pass turns them into base-4 words once
// every label's address is known.
func FirstPass(u *Unit, lines []string) {
	ic := uint16(machine.MemoryStart)
	var dc uint16

	for i, raw := range lines {
		pos := Pos{File: u.Name, Line: i + 1}
		if len(raw) > MaxLineLength {
			u.Fail(&LineTooLongError{Pos: pos, Length: len(raw)})
			continue
		}
		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		label, rest := splitLabel(line, pos, u)
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}

		fields := strings.Fields(rest)
		head := fields[0]

		switch head {
		case ".extern":
			if label != "" {
				u.Warn(fmt.Sprintf("%s: label ignored on .extern directive\n\thave:%q", pos, label))
			}
			for _, name := range fields[1:] {
				if err := u.Symbols.DeclareExternal(name, pos); err != nil {
					u.Fail(err)
				}
			}
			continue

		case ".entry":
			if label != "" {
				u.Warn(fmt.Sprintf("%s: label ignored on .entry directive\n\thave:%q", pos, label))
			}
			for _, name := range fields[1:] {
				if err := u.Symbols.DeclareEntry(name, pos); err != nil {
					u.Fail(err)
				}
			}
			continue

		case ".data":
			if label != "" {
				if err := u.Symbols.DefineLocal(label, SymbolData, dc, pos); err != nil {
					u.Fail(err)
				}
			}
			values, err := parseDataList(rest[len(".data"):], pos)
			if err != nil {
				u.Fail(err)
				continue
			}
			for _, v := range values {
				u.Data = append(u.Data, &DataItem{Pos: pos, Value: v, Offset: dc})
				dc++
			}
			continue

		case ".string":
			if label != "" {
				if err := u.Symbols.DefineLocal(label, SymbolData, dc, pos); err != nil {
					u.Fail(err)
				}
			}
			text, err := parseStringLiteral(rest[len(".string"):], pos)
			if err != nil {
				u.Fail(err)
				continue
			}
			for _, c := range []byte(text) {
				u.Data = append(u.Data, &DataItem{Pos: pos, Value: int(c), Offset: dc})
				dc++
			}
			u.Data = append(u.Data, &DataItem{Pos: pos, Value: 0, Offset: dc})
			dc++
			continue

		case ".mat":
			if label != "" {
				if err := u.Symbols.DefineLocal(label, SymbolData, dc, pos); err != nil {
					u.Fail(err)
				}
			}
			rows, cols, values, err := parseMatrixDecl(rest[len(".mat"):], pos)
			if err != nil {
				u.Fail(err)
				continue
			}
			total := rows * cols
			if len(values) > total {
				u.Warn(fmt.Sprintf("%s: too many matrix initialisers, discarding extras\n\twant:<=%d\n\thave:%d", pos, total, len(values)))
				values = values[:total]
			}
			for idx := 0; idx < total; idx++ {
				v := 0
				if idx < len(values) {
					v = values[idx]
				}
				u.Data = append(u.Data, &DataItem{Pos: pos, Value: v, Offset: dc})
				dc++
			}
			continue
		}

		if !IsOpcode(head) {
			u.Fail(&InvalidOperandError{Pos: pos, Text: head})
			continue
		}

		in, err := parseInstruction(u, head, fields[1:], pos)
		if err != nil {
			u.Fail(err)
			continue
		}
		in.Label = label
		in.Address = ic

		if label != "" {
			if err := u.Symbols.DefineLocal(label, SymbolCode, ic, pos); err != nil {
				u.Fail(err)
			}
		}

		u.Instructions = append(u.Instructions, in)
		ic += uint16(in.Length())
	}

	u.FinalIC = ic
	u.FinalDC = dc

	u.Symbols.RelocateData(ic)
	for _, d := range u.Data {
		d.Offset += ic
	}

	for _, sym := range u.Symbols.UndefinedEntries() {
		u.Fail(&EntryNotDefinedError{Pos: sym.Defined, Name: sym.Name})
	}
}

// stripComment drops everything from an unquoted ';' onward.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

func splitLabel(line string, pos Pos, u *Unit) (label, rest string) {
	trimmed := strings.TrimLeft(line, " \t")
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return "", line
	}
	candidate := trimmed[:colon]
	if strings.ContainsAny(candidate, " \t") {
		return "", line
	}
	if len(candidate) > MaxSymbolLength {
		u.Fail(&NameTooLongError{Pos: pos, Name: candidate})
		return "", trimmed[colon+1:]
	}
	if !validLabelSyntax(candidate) {
		u.Fail(&InvalidLabelError{Pos: pos, Name: candidate})
		return "", trimmed[colon+1:]
	}
	if reservedWords[candidate] {
		u.Fail(&ReservedWordError{Pos: pos, Name: candidate})
	}
	return candidate, trimmed[colon+1:]
}

func parseDataList(text string, pos Pos) ([]int, PositionedError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &MalformedNumberError{Pos: pos, Text: ""}
	}
	var out []int
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &MalformedNumberError{Pos: pos, Text: part}
		}
		if n < MinLiteral || n > MaxLiteral {
			return nil, &OversizedLiteralError{Pos: pos, Value: n}
		}
		out = append(out, n)
	}
	return out, nil
}

func parseStringLiteral(text string, pos Pos) (string, PositionedError) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", &UnterminatedStringError{Pos: pos}
	}
	return text[1 : len(text)-1], nil
}

func parseMatrixDecl(text string, pos Pos) (rows, cols int, values []int, _ PositionedError) {
	text = strings.TrimSpace(text)
	if len(text) == 0 || text[0] != '[' {
		return 0, 0, nil, &InvalidMatrixError{Pos: pos, Text: text}
	}
	dims := consumeDims(text)
	rows, cols, err := parseDims(dims, pos)
	if err != nil {
		return 0, 0, nil, err
	}

	rest := strings.TrimSpace(text[len(dims):])
	if rest == "" {
		return rows, cols, nil, nil
	}
	values, derr := parseDataList(rest, pos)
	if derr != nil {
		return 0, 0, nil, derr
	}
	return rows, cols, values, nil
}

// parseDims parses a "[N][M]" dimension pair into two positive integer
// counts.
func parseDims(text string, pos Pos) (rows, cols int, _ PositionedError) {
	text = strings.TrimSpace(text)
	var nums []int
	for len(text) > 0 {
		if text[0] != '[' {
			return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
		}
		close := strings.IndexByte(text, ']')
		if close < 0 {
			return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
		}
		n, err := strconv.Atoi(strings.TrimSpace(text[1:close]))
		if err != nil || n <= 0 {
			return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
		}
		nums = append(nums, n)
		text = strings.TrimSpace(text[close+1:])
	}
	if len(nums) != 2 {
		return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
	}
	return nums[0], nums[1], nil
}

// consumeDims returns the leading "[N][M]" portion of text.
func consumeDims(text string) string {
	n := 0
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			n = i + 1
			if depth == 0 {
				next := n
				for next < len(text) && (text[next] == ' ' || text[next] == '\t') {
					next++
				}
				if next >= len(text) || text[next] != '[' {
					return text[:n]
				}
			}
		}
	}
	return text[:n]
}

func parseInstruction(u *Unit, mnemonic string, operandFields []string, pos Pos) (*Instruction, PositionedError) {
	operandText := strings.Join(operandFields, " ")
	var operands []string
	if strings.TrimSpace(operandText) != "" {
		operands = splitOperands(operandText)
	}

	want := OperandArity(mnemonic)
	if len(operands) != want {
		return nil, &OperandCountError{Pos: pos, Mnemonic: mnemonic, Want: want, Have: len(operands)}
	}

	in := &Instruction{Pos: pos, Mnemonic: mnemonic}

	switch want {
	case 0:
	case 1:
		dest, err := ParseOperand(operands[0], pos)
		if err != nil {
			return nil, err
		}
		if !destModeLegal(mnemonic, dest.Mode) {
			return nil, &IllegalAddressingModeError{Pos: pos, Mnemonic: mnemonic, Slot: "destination"}
		}
		in.Dest = dest
	case 2:
		src, err := ParseOperand(operands[0], pos)
		if err != nil {
			return nil, err
		}
		if !srcModeLegal(mnemonic, src.Mode) {
			return nil, &IllegalAddressingModeError{Pos: pos, Mnemonic: mnemonic, Slot: "source"}
		}
		dest, err := ParseOperand(operands[1], pos)
		if err != nil {
			return nil, err
		}
		if !destModeLegal(mnemonic, dest.Mode) {
			return nil, &IllegalAddressingModeError{Pos: pos, Mnemonic: mnemonic, Slot: "destination"}
		}
		in.Src = src
		in.Dest = dest
	}

	return in, nil
}

// splitOperands splits on commas that are not inside a "[...]" index.
func splitOperands(text string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(text[start:]))
	return out
}
