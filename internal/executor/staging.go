package executor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/logfields"
)

// StagingTree owns the shared staging locations inside the working tree: the
// active manifest slot, the top-level documentation file, and the artifact
// output directory. Exactly one package may occupy the tree at a time; the
// executor serializes access.
type StagingTree struct {
	root         string
	manifestPath string // rel to root
	docPath      string // rel to root
	outputDir    string // rel to root

	savedDoc    []byte // original doc content while an override is staged
	docReplaced bool
}

// NewStagingTree creates a staging tree rooted at the working tree root.
func NewStagingTree(root string, sc config.StagingConfig) *StagingTree {
	return &StagingTree{
		root:         root,
		manifestPath: sc.ManifestPath,
		docPath:      sc.DocPath,
		outputDir:    sc.OutputDir,
	}
}

// ManifestTarget returns the absolute path of the active manifest slot.
func (st *StagingTree) ManifestTarget() string {
	return filepath.Join(st.root, st.manifestPath)
}

// OutputDir returns the absolute path of the artifact output directory.
func (st *StagingTree) OutputDir() string {
	return filepath.Join(st.root, st.outputDir)
}

// StageManifest copies a package's manifest into the active slot. It fails
// with StagingConflictError if the slot is already occupied, which means a
// previous package's cleanup did not run to completion.
func (st *StagingTree) StageManifest(manifest string) error {
	target := st.ManifestTarget()
	if _, err := os.Stat(target); err == nil {
		return &StagingConflictError{Path: st.manifestPath}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check staging slot: %w", err)
	}

	if err := copyFile(filepath.Join(st.root, manifest), target); err != nil {
		return fmt.Errorf("failed to stage manifest %s: %w", manifest, err)
	}
	slog.Debug("Manifest staged", logfields.Manifest(manifest), logfields.Path(target))
	return nil
}

// StageDocOverride replaces the top-level documentation file with the
// package's override, keeping the original content for restoration.
func (st *StagingTree) StageDocOverride(override string) error {
	target := filepath.Join(st.root, st.docPath)

	original, err := os.ReadFile(target)
	switch {
	case err == nil:
		st.savedDoc = original
	case os.IsNotExist(err):
		st.savedDoc = nil
	default:
		return fmt.Errorf("failed to read documentation file: %w", err)
	}

	if err := copyFile(filepath.Join(st.root, override), target); err != nil {
		return fmt.Errorf("failed to stage documentation override %s: %w", override, err)
	}
	st.docReplaced = true
	slog.Debug("Documentation override staged", logfields.Path(override))
	return nil
}

// Cleanup returns the tree to its pristine state: unstages the manifest,
// restores the original documentation file, and empties the output
// directory. It runs whether or not the package's build or upload succeeded,
// so a failed package never leaves stale artifacts for the next one.
func (st *StagingTree) Cleanup() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := os.Remove(st.ManifestTarget()); err != nil && !os.IsNotExist(err) {
		record(fmt.Errorf("failed to unstage manifest: %w", err))
	}

	if st.docReplaced {
		target := filepath.Join(st.root, st.docPath)
		if st.savedDoc != nil {
			record(os.WriteFile(target, st.savedDoc, 0o644))
		} else if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			record(fmt.Errorf("failed to remove staged documentation: %w", err))
		}
		st.savedDoc = nil
		st.docReplaced = false
	}

	if err := os.RemoveAll(st.OutputDir()); err != nil {
		record(fmt.Errorf("failed to clear output directory: %w", err))
	}

	return firstErr
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
