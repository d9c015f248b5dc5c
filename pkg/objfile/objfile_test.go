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

package objfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfbit/quadasm/pkg/assembler"
	"github.com/halfbit/quadasm/pkg/objfile"
)

func TestWriteObRoundTrip(t *testing.T) {
	source := ".extern EXTF\nMAIN: jsr EXTF\nstop\n"
	u, result := assembler.Assemble("t", source)
	require.False(t, u.Failed(), "assemble errors: %v", u.Errors)

	obj := objfile.NewObject(result)

	var buf bytes.Buffer
	require.NoError(t, objfile.WriteOb(&buf, obj))

	got, err := objfile.ReadOb(&buf)
	require.NoError(t, err)
	require.Equal(t, obj.InstructionWords, got.InstructionWords)
	require.Equal(t, obj.DataWords, got.DataWords)
	require.Equal(t, obj.Words, got.Words)
}

func TestWriteEntSkippedWithoutEntries(t *testing.T) {
	source := "MAIN: stop\n"
	u, result := assembler.Assemble("t", source)
	require.False(t, u.Failed())

	var buf bytes.Buffer
	wrote, err := objfile.WriteEnt(&buf, result.Symbols)
	require.NoError(t, err)
	require.False(t, wrote)
	require.Zero(t, buf.Len())
}

func TestWriteEntWritesBoundEntries(t *testing.T) {
	source := ".entry MAIN\nMAIN: stop\n"
	u, result := assembler.Assemble("t", source)
	require.False(t, u.Failed(), "assemble errors: %v", u.Errors)

	var buf bytes.Buffer
	wrote, err := objfile.WriteEnt(&buf, result.Symbols)
	require.NoError(t, err)
	require.True(t, wrote)
	require.Contains(t, buf.String(), "MAIN ")
}

func TestWriteQSymRoundTrip(t *testing.T) {
	source := "NUM: .data 5\nMAIN: mov NUM, r1\nstop\n"
	u, result := assembler.Assemble("t", source)
	require.False(t, u.Failed(), "assemble errors: %v", u.Errors)

	var buf bytes.Buffer
	require.NoError(t, objfile.WriteQSym(&buf, result.Symbols))

	labels, err := objfile.ReadQSym(&buf)
	require.NoError(t, err)

	mainSym, ok := result.Symbols.Lookup("MAIN")
	require.True(t, ok)
	require.Equal(t, "MAIN", labels[mainSym.Address])

	numSym, ok := result.Symbols.Lookup("NUM")
	require.True(t, ok)
	require.Equal(t, "NUM", labels[numSym.Address])
}

func TestWriteExtUsageOrder(t *testing.T) {
	source := ".extern FOO\nMAIN: jsr FOO\ncmp FOO, FOO\nstop\n"
	u, result := assembler.Assemble("t", source)
	require.False(t, u.Failed(), "assemble errors: %v", u.Errors)

	usages := objfile.ExternalUsages(result.Symbols)
	require.Len(t, usages, 3)
	for _, usage := range usages {
		require.Equal(t, "FOO", usage.Name)
	}
	require.Less(t, usages[0].Address, usages[1].Address)
	require.Less(t, usages[1].Address, usages[2].Address)
}
