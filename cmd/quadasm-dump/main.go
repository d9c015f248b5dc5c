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

package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/halfbit/quadasm/pkg/inspector"
	"github.com/halfbit/quadasm/pkg/objfile"
)

const usage = "quadasm-dump basename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	flag.Parse()
}

func quadasmDump() int {
	args := flag.Args()
	if len(args) != 1 {
		log.Println(usage)
		return 1
	}
	base := args[0]

	obFile, err := os.Open(base + ".ob")
	if err != nil {
		log.Println(err)
		return 1
	}
	defer obFile.Close()

	obj, err := objfile.ReadOb(obFile)
	if err != nil {
		log.Println(err)
		return 1
	}

	labels := readLabels(base)

	rows, _, _ := term.GetSize(int(os.Stdout.Fd()))
	pageRows := rows - 2
	if pageRows <= 0 {
		pageRows = 20
	}

	browser := inspector.NewBrowser(obj, labels, pageRows)
	colorize := term.IsTerminal(int(os.Stdout.Fd()))

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		browser.Render(os.Stdout, false)
		return 0
	}

	rt, err := inspector.EnterRaw()
	if err != nil {
		log.Println(err)
		return 1
	}
	defer rt.Restore()

	inspector.Run(browser, bufio.NewReader(os.Stdin), os.Stdout, rt, colorize)
	return 0
}

// readLabels prefers base.qsym, the full symbol-table snapshot written
// by "quadasm -dump", falling back to the entries-only base.ent manifest
// every assembly produces. Either file missing is not an error: the
// unit may have declared no entries, and -dump is opt-in.
func readLabels(base string) map[uint16]string {
	if f, err := os.Open(base + ".qsym"); err == nil {
		defer f.Close()
		if labels, err := objfile.ReadQSym(f); err == nil {
			return labels
		}
	}
	return readEntries(base + ".ent")
}

// readEntries parses a .ent manifest, if present, into an
// address-to-name map. A missing file is not an error: the unit may
// have declared no entries.
func readEntries(path string) map[uint16]string {
	labels := make(map[uint16]string)

	f, err := os.Open(path)
	if err != nil {
		return labels
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		addr, err := objfile.DecodeBase4(fields[1])
		if err != nil {
			continue
		}
		labels[addr] = fields[0]
	}
	return labels
}

func main() {
	os.Exit(quadasmDump())
}
