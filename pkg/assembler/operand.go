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
	"strconv"
	"strings"
)

// ParseOperand classifies raw operand text into one of the four
// addressing modes. It is called exactly once per operand, during the
// first pass; the second pass reuses the resulting Operand rather than
// re-parsing the text.
func ParseOperand(text string, pos Pos) (*Operand, PositionedError) {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, &InvalidOperandError{Pos: pos, Text: text}
	}

	if strings.HasPrefix(text, "#") {
		n, err := strconv.Atoi(text[1:])
		if err != nil {
			return nil, &MalformedNumberError{Pos: pos, Text: text[1:]}
		}
		if n < MinLiteral || n > MaxLiteral {
			return nil, &OversizedLiteralError{Pos: pos, Value: n}
		}
		return &Operand{Mode: ModeImmediate, Pos: pos, Immediate: n}, nil
	}

	if IsRegister(text) {
		return &Operand{Mode: ModeRegister, Pos: pos, Register: RegisterNumber(text)}, nil
	}

	if idx := strings.IndexByte(text, '['); idx >= 0 {
		label := text[:idx]
		if !validLabelSyntax(label) {
			return nil, &InvalidLabelError{Pos: pos, Name: label}
		}
		rest := text[idx:]
		row, col, err := parseMatrixIndex(rest, pos)
		if err != nil {
			return nil, err
		}
		return &Operand{Mode: ModeMatrix, Pos: pos, Label: label, Row: row, Col: col}, nil
	}

	if !validLabelSyntax(text) {
		return nil, &InvalidOperandError{Pos: pos, Text: text}
	}
	return &Operand{Mode: ModeDirect, Pos: pos, Label: text}, nil
}

// parseMatrixIndex parses the "[rX][rY]" suffix of a matrix operand into
// its two index registers.
func parseMatrixIndex(text string, pos Pos) (row, col int, _ PositionedError) {
	text = strings.TrimSpace(text)
	var regs []string
	for len(text) > 0 {
		if text[0] != '[' {
			return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
		}
		close := strings.IndexByte(text, ']')
		if close < 0 {
			return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
		}
		regs = append(regs, strings.TrimSpace(text[1:close]))
		text = strings.TrimSpace(text[close+1:])
	}
	if len(regs) != 2 || !IsRegister(regs[0]) || !IsRegister(regs[1]) {
		return 0, 0, &InvalidMatrixError{Pos: pos, Text: text}
	}
	return RegisterNumber(regs[0]), RegisterNumber(regs[1]), nil
}

// validLabelSyntax reports whether s could be a label: a letter followed
// by letters and digits, within the name length limit. It does not check
// s against the reserved words.
func validLabelSyntax(s string) bool {
	if s == "" || len(s) > MaxSymbolLength {
		return false
	}
	if !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

const (
	MinLiteral = -512
	MaxLiteral = 511
)
