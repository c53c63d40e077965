//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr places mpv in its own process group so Ctrl+C in the TUI does not kill it mid-command.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcess kills the whole mpv process group.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
