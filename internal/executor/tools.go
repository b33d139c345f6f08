package executor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/logfields"
)

// Credentials is the opaque username/password (or token) pair consumed only
// by the upload step. It is passed explicitly, never read from ambient state
// inside the executor, and never logged.
type Credentials struct {
	Username string
	Password string
}

// BuildTool produces a distributable artifact from the staged manifest.
type BuildTool interface {
	// Build runs the external build and returns the artifact directory.
	Build(ctx context.Context, pkg string) (string, error)
}

// UploadTool publishes the artifacts in artifactDir.
type UploadTool interface {
	Upload(ctx context.Context, pkg, artifactDir string, creds Credentials) error
}

// CommandBuildTool invokes a configured external command in the working tree
// root and expects it to populate the staging tree's output directory.
type CommandBuildTool struct {
	root    string
	command []string
	tree    *StagingTree
}

// NewCommandBuildTool creates the exec-based build tool.
func NewCommandBuildTool(root string, bc config.BuildConfig, tree *StagingTree) *CommandBuildTool {
	return &CommandBuildTool{root: root, command: bc.Command, tree: tree}
}

// Build runs the build command and verifies it produced at least one artifact.
func (t *CommandBuildTool) Build(ctx context.Context, pkg string) (string, error) {
	cmd := exec.CommandContext(ctx, t.command[0], t.command[1:]...)
	cmd.Dir = t.root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running build tool", logfields.Package(pkg), slog.String("command", t.command[0]))
	if err := cmd.Run(); err != nil {
		return "", &BuildError{Package: pkg, Err: err}
	}

	artifactDir := t.tree.OutputDir()
	artifacts, err := listArtifacts(artifactDir)
	if err != nil {
		return "", &BuildError{Package: pkg, Err: err}
	}
	if len(artifacts) == 0 {
		return "", &BuildError{Package: pkg, Err: fmt.Errorf("build produced no artifacts in %s", artifactDir)}
	}
	return artifactDir, nil
}

// CommandUploadTool invokes a configured external command with the artifact
// paths appended. Credentials travel via the configured environment variable
// names, never on the command line.
type CommandUploadTool struct {
	root        string
	command     []string
	usernameEnv string
	passwordEnv string
}

// NewCommandUploadTool creates the exec-based upload tool.
func NewCommandUploadTool(root string, uc config.UploadConfig) *CommandUploadTool {
	return &CommandUploadTool{
		root:        root,
		command:     uc.Command,
		usernameEnv: uc.UsernameEnv,
		passwordEnv: uc.PasswordEnv,
	}
}

// Upload runs the upload command against every artifact in artifactDir.
// Failures are classified into AuthError / NetworkError from the tool output
// so the caller can decide on retries.
func (t *CommandUploadTool) Upload(ctx context.Context, pkg, artifactDir string, creds Credentials) error {
	artifacts, err := listArtifacts(artifactDir)
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("no artifacts to upload in %s", artifactDir)
	}

	args := append(append([]string{}, t.command[1:]...), artifacts...)
	cmd := exec.CommandContext(ctx, t.command[0], args...)
	cmd.Dir = t.root
	cmd.Env = append(os.Environ(),
		t.usernameEnv+"="+creds.Username,
		t.passwordEnv+"="+creds.Password,
	)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	slog.Info("Running upload tool",
		logfields.Package(pkg),
		slog.String("command", t.command[0]),
		slog.Int("artifacts", len(artifacts)))
	if err := cmd.Run(); err != nil {
		slog.Debug("Upload tool output", slog.String("output", output.String()))
		return classifyUploadError(pkg, output.String(), err)
	}
	return nil
}

// listArtifacts returns the regular files in dir, sorted for determinism.
// A missing directory yields an empty list.
func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
