// Copyright 2022 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

//go:build windows

package pipeline

import (
	"os/exec"
	"syscall"
)

// HideCmd stops a console window from popping up each time
// ghostscript or tesseract is run
func HideCmd(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
