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
	"os"

	"golang.org/x/sys/unix"
)

// RawTerm puts the controlling terminal into the unbuffered,
// unechoed mode the paging keystroke loop needs, and restores the
// prior settings on Restore.
type RawTerm struct {
	saved unix.Termios
}

func EnterRaw() (*RawTerm, error) {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return nil, err
	}

	rt := &RawTerm{saved: *termios}
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &state); err != nil {
		return nil, err
	}

	return rt, nil
}

func (rt *RawTerm) Restore() error {
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &rt.saved)
}
