//go:build unix

package notifier

import (
	"os"
	"os/exec"
	"syscall"
)

func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}

func terminateProcess(pid int, force bool) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	if force {
		return proc.Kill()
	}

	return proc.Signal(syscall.SIGTERM)
}
