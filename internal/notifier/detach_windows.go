//go:build windows

package notifier

import (
	"os"
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
		HideWindow:    true,
	}
}

// terminateProcess kills the process. Windows has no SIGTERM for detached
// console processes.
func terminateProcess(pid int, _ bool) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	return proc.Kill()
}
