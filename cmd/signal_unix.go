//go:build !windows

package cmd

import (
	"os"
	"syscall"
)

func resumeSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
