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

package inspector

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const helpText = `keys:
  n  next page
  p  previous page
  j  jump to an address or label
  l  list every known label
  h  this help
  q  quit
`

// Run drives the browser one keystroke at a time, reading single bytes
// from r. A jump command temporarily hands raw back to term (if
// non-nil) so the address or label name can be typed as a normal
// cooked-mode line.
func Run(b *Browser, r *bufio.Reader, w io.Writer, term *RawTerm, colorize bool) {
	b.Render(w, colorize)

	for {
		key, err := r.ReadByte()
		if err != nil {
			return
		}

		switch key {
		case 'n':
			if !b.NextPage() {
				fmt.Fprintln(w, "already at the last page")
			}
			b.Render(w, colorize)

		case 'p':
			if !b.PrevPage() {
				fmt.Fprintln(w, "already at the first page")
			}
			b.Render(w, colorize)

		case 'j':
			target := readCookedLine(r, w, term, "jump to> ")
			if target == "" {
				break
			}
			if addr, err := strconv.ParseUint(target, 10, 16); err == nil {
				if !b.JumpToAddress(uint16(addr)) {
					fmt.Fprintf(w, "address %d is outside the unit\n", addr)
				}
			} else if !b.JumpToLabel(target) {
				fmt.Fprintf(w, "no label named %q\n", target)
			}
			b.Render(w, colorize)

		case 'l':
			printLabels(w, b.Labels)

		case 'h':
			fmt.Fprint(w, helpText)

		case 'q':
			return
		}
	}
}

// readCookedLine restores canonical terminal input for one line, then
// re-enters raw mode before returning.
func readCookedLine(r *bufio.Reader, w io.Writer, term *RawTerm, prompt string) string {
	if term != nil {
		if err := term.Restore(); err != nil {
			fmt.Fprintln(w, err)
			return ""
		}
		defer func() {
			if _, err := EnterRaw(); err != nil {
				fmt.Fprintln(w, err)
			}
		}()
	}

	fmt.Fprint(w, prompt)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func printLabels(w io.Writer, labels map[uint16]string) {
	addrs := make([]uint16, 0, len(labels))
	for addr := range labels {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, addr := range addrs {
		fmt.Fprintf(w, "[%05d] %s\n", addr, labels[addr])
	}
}
