//go:build windows

package cmd

import "os"

func resumeSignals() []os.Signal {
	return nil
}
