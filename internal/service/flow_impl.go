package service

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// flowService is the implementation of the FlowService interface.
type flowService struct {
	timeout time.Duration
}

// NewFlowService creates a new FlowService.
func NewFlowService() FlowService {
	return &flowService{
		timeout: DefaultFlowTimeout,
	}
}

// sanitizeVersion keeps a version argument safe to pass to the shell. Literal
// versions are deliberately not validated against semantic-version shape
// (that is the caller's responsibility), but they must not be able to smuggle
// arbitrary arguments or path segments.
func (s *flowService) sanitizeVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	validRef := regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	if !validRef.MatchString(version) {
		return fmt.Errorf("invalid version format: %s", version)
	}
	if strings.Contains(version, "..") {
		return fmt.Errorf("invalid version: contains directory traversal")
	}
	if len(version) > 100 {
		return fmt.Errorf("version too long: maximum 100 characters")
	}
	return nil
}

// executeCommand runs a command with timeout and proper resource cleanup.
func (s *flowService) executeCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timed out after %v", s.timeout)
		}
		errMsg := stderr.String()
		if errMsg != "" {
			return nil, fmt.Errorf("command failed: %w (stderr: %s)", err, errMsg)
		}
		return nil, fmt.Errorf("command failed: %w", err)
	}

	return stdout.Bytes(), nil
}

// ReleaseStart opens a release branch for the given version.
func (s *flowService) ReleaseStart(ctx context.Context, version string) error {
	if err := s.sanitizeVersion(version); err != nil {
		return fmt.Errorf("invalid release version: %w", err)
	}
	if _, err := s.executeCommand(ctx, "git", "flow", "release", "start", version); err != nil {
		return fmt.Errorf("failed to start release %s: %w", version, err)
	}
	return nil
}

// ReleaseFinish merges the release branch into master and develop and tags
// master with the version.
func (s *flowService) ReleaseFinish(ctx context.Context, version string) error {
	if err := s.sanitizeVersion(version); err != nil {
		return fmt.Errorf("invalid release version: %w", err)
	}
	if _, err := s.executeCommand(ctx, "git", "flow", "release", "finish", "-m", version, version); err != nil {
		return fmt.Errorf("failed to finish release %s: %w", version, err)
	}
	return nil
}
