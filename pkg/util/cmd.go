package util

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/power-devops/vios-altdisk/pkg/types"
)

// CmdExecutor runs commands on the local host, one at a time, and waits for
// each to finish. It satisfies types.Executor.
type CmdExecutor struct{}

func NewCmdExecutor() *CmdExecutor {
	return &CmdExecutor{}
}

func (e *CmdExecutor) Execute(binary string, args []string) (string, string, error) {
	line := types.CommandLine(binary, args)

	path, err := exec.LookPath(binary)
	if err == nil {
		path, err = filepath.Abs(path)
	}
	if err != nil {
		return "", "", &types.CommandError{
			Command:  line,
			ExitCode: -1,
			Reason:   fmt.Sprintf("command '%s' failed: %v", line, err),
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &types.CommandError{
			Command:  line,
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			cmdErr.ExitCode = exitErr.ExitCode()
		} else {
			cmdErr.Reason = fmt.Sprintf("command '%s' failed: %v", line, err)
		}
		return stdout.String(), stderr.String(), cmdErr
	}

	return stdout.String(), stderr.String(), nil
}

func UUID() string {
	return uuid.New().String()
}
