package oracle

import (
	"fmt"
	"os/exec"
)

// LaunchViewer starts the external mesh viewer on the given files and
// returns a channel that receives the process exit result. The viewer
// runs alongside the question round; callers await the channel
// separately so an open viewer never blocks answering.
func LaunchViewer(program, workdir string, files []string) (<-chan error, error) {
	if program == "" {
		return nil, fmt.Errorf("no viewer program configured")
	}

	cmd := exec.Command(program, files...)
	if workdir != "" {
		cmd.Dir = workdir
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start viewer: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}
