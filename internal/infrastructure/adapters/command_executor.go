package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	domainErrors "ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// RealCommandExecutor runs commands directly with exec, never through a shell
type RealCommandExecutor struct {
	logger *logrus.Logger
}

// NewRealCommandExecutor creates a new RealCommandExecutor
func NewRealCommandExecutor(logger *logrus.Logger) interfaces.CommandExecutor {
	return &RealCommandExecutor{logger: logger}
}

// Execute runs the command and returns its stdout
func (e *RealCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	e.logger.Infof("run: %s %s", command, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, domainErrors.NewNetworkError(
				fmt.Sprintf("command exited with status %d: %s %v", exitErr.ExitCode(), command, args),
				fmt.Errorf("%w, stderr: %s", err, strings.TrimSpace(stderr.String())),
			)
		}
		return nil, domainErrors.NewSystemError(
			fmt.Sprintf("command execution failed: %s %v", command, args),
			err,
		)
	}

	return stdout.Bytes(), nil
}

// ExecuteWithTimeout runs the command with a deadline; timeout <= 0 runs it unbounded
func (e *RealCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		return e.Execute(ctx, command, args...)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := e.Execute(ctx, command, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domainErrors.NewTimeoutError(
				fmt.Sprintf("command execution timeout: %s %v (timeout: %v)", command, args, timeout),
			)
		}
		return nil, err
	}

	return output, nil
}
