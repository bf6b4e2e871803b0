//go:build windows

package opsin

import "os/exec"

func isolateProcessGroup(*exec.Cmd) {}

// killProcessGroup kills the child only; WaitDelay bounds any grandchild
// still holding the output pipes.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
