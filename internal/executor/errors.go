package executor

import (
	"fmt"
	"strings"
)

// Typed errors enabling structured classification without string parsing upstream.

// BuildError indicates the external build tool failed for one package.
type BuildError struct {
	Package string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed for %s: %v", e.Package, e.Err)
}
func (e *BuildError) Unwrap() error { return e.Err }

// AuthError indicates the upload was rejected for bad credentials.
type AuthError struct {
	Package string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("upload auth error for %s: %v", e.Package, e.Err)
}
func (e *AuthError) Unwrap() error { return e.Err }

// NetworkError indicates a transient transport failure during upload.
type NetworkError struct {
	Package string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upload network error for %s: %v", e.Package, e.Err)
}
func (e *NetworkError) Unwrap() error { return e.Err }

// StagingConflictError indicates the shared staging location was already
// occupied when a package tried to claim it. This should never happen under
// the sequential discipline of the executor; when it does, staging state can
// no longer be trusted and the remaining plan is aborted.
type StagingConflictError struct {
	Path string
}

func (e *StagingConflictError) Error() string {
	return fmt.Sprintf("staging conflict: %s already present", e.Path)
}

// classifyUploadError wraps upload tool failures into typed variants based on
// the tool's output when possible.
func classifyUploadError(pkg, output string, err error) error {
	if err == nil {
		return nil
	}
	l := strings.ToLower(output + " " + err.Error())
	switch {
	case strings.Contains(l, "401") || strings.Contains(l, "403") ||
		strings.Contains(l, "unauthorized") || strings.Contains(l, "forbidden") ||
		strings.Contains(l, "invalid credentials") || strings.Contains(l, "authentication"):
		return &AuthError{Package: pkg, Err: err}
	case strings.Contains(l, "timeout") || strings.Contains(l, "timed out") ||
		strings.Contains(l, "connection") || strings.Contains(l, "network") ||
		strings.Contains(l, "temporarily unavailable") || strings.Contains(l, "503"):
		return &NetworkError{Package: pkg, Err: err}
	default:
		return fmt.Errorf("upload failed for %s: %w", pkg, err)
	}
}
