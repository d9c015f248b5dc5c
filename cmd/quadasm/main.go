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
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/halfbit/quadasm/pkg/assembler"
	"github.com/halfbit/quadasm/pkg/objfile"
)

const usage = "quadasm [-o base] [-warn] [-dump] basename..."

var (
	outFlag  string
	warnFlag bool
	dumpFlag bool
	colorize bool
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	flag.StringVar(&outFlag, "o", "", "override the output base name (valid with exactly one input)")
	flag.BoolVar(&warnFlag, "warn", false, "promote warnings to errors")
	flag.BoolVar(&dumpFlag, "dump", false, "also write a .qsym debug snapshot for quadasm-dump")
	flag.Parse()

	colorize = term.IsTerminal(int(os.Stderr.Fd()))
}

func quadasm() int {
	args := flag.Args()
	if len(args) == 0 {
		log.Println(usage)
		return 1
	}
	if outFlag != "" && len(args) != 1 {
		log.Println("-o requires exactly one input file")
		return 1
	}

	for _, base := range args {
		outBase := base
		if outFlag != "" {
			outBase = outFlag
		}
		assembleUnit(base, outBase)
	}

	return 0
}

func assembleUnit(base, outBase string) {
	log.SetPrefix(prefix(base))

	sourcePath := base + ".as"
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Println(err)
		return
	}

	u, result := assembler.Assemble(base, string(raw))

	if u.Expanded != "" {
		if err := os.WriteFile(outBase+".am", []byte(u.Expanded+"\n"), 0644); err != nil {
			log.Printf("writing %s.am: %v", outBase, err)
			return
		}
	}

	for _, w := range u.Warnings {
		log.Println(w)
	}
	if warnFlag && len(u.Warnings) > 0 {
		log.Println("warnings promoted to errors by -warn")
		return
	}

	if u.Failed() {
		reportErrors(u, string(raw))
		return
	}

	writeArtifacts(outBase, result)

	if dumpFlag {
		if err := writeSymbolSnapshot(outBase, result); err != nil {
			log.Printf("writing %s.qsym: %v", outBase, err)
		}
	}
}

func writeSymbolSnapshot(outBase string, result *assembler.Result) error {
	f, err := os.Create(outBase + ".qsym")
	if err != nil {
		return err
	}
	defer f.Close()
	return objfile.WriteQSym(f, result.Symbols)
}

func reportErrors(u *assembler.Unit, source string) {
	lines := strings.Split(source, "\n")
	for _, err := range u.Errors {
		pos := err.Position()
		if pos.Line >= 1 && pos.Line <= len(lines) {
			log.Printf("%s\n%s", err, lines[pos.Line-1])
		} else {
			log.Println(err)
		}
	}
}

func writeArtifacts(base string, result *assembler.Result) {
	obj := objfile.NewObject(result)

	obFile, err := os.Create(base + ".ob")
	if err != nil {
		log.Println(err)
		return
	}
	defer obFile.Close()
	if err := objfile.WriteOb(obFile, obj); err != nil {
		log.Println(err)
		return
	}

	if err := writeIfNonEmpty(base+".ent", "no entries declared", func(w *os.File) (bool, error) {
		return objfile.WriteEnt(w, result.Symbols)
	}); err != nil {
		log.Println(err)
	}

	if err := writeIfNonEmpty(base+".ext", "no externals referenced", func(w *os.File) (bool, error) {
		return objfile.WriteExt(w, result.Symbols)
	}); err != nil {
		log.Println(err)
	}
}

// writeIfNonEmpty creates path only if the writer function reports it
// wrote at least one record; an empty manifest is informational, not an
// error, and leaves no file behind.
func writeIfNonEmpty(path, emptyMsg string, write func(*os.File) (bool, error)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	wrote, werr := write(f)
	f.Close()

	if werr != nil {
		os.Remove(path)
		return werr
	}
	if !wrote {
		os.Remove(path)
		fmt.Printf("%s: %s\n", path, emptyMsg)
	}
	return nil
}

func prefix(base string) string {
	if colorize {
		return fmt.Sprintf("\033[1m%s:\033[0m ", base)
	}
	return base + ": "
}

func main() {
	os.Exit(quadasm())
}
