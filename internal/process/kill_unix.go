//go:build !windows

// Package process stops browser processes left behind by PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking the
// browser's renderer and GPU children down with it. Errors are ignored; the
// caller still runs the launcher's own cleanup.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
