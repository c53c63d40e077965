//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr returns nil; Windows has no process groups to detach from.
func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
