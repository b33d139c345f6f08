// Package executor runs the publish plan: for each planned package it stages
// the manifest, swaps documentation if configured, builds, uploads, and
// cleans up. Packages are strictly sequential because they share one staging
// slot and one output directory. Per-package failures are isolated; only a
// staging conflict aborts the remaining plan.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/pkgship/internal/descriptor"
	"git.home.luguber.info/inful/pkgship/internal/doccheck"
	pkgerrors "git.home.luguber.info/inful/pkgship/internal/errors"
	"git.home.luguber.info/inful/pkgship/internal/logfields"
	"git.home.luguber.info/inful/pkgship/internal/plan"
	"git.home.luguber.info/inful/pkgship/internal/retry"
)

// Status is the outcome of one package's publish.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the per-package outcome. Results are collected for the final
// report and never persisted beyond the run.
type Result struct {
	Name        string
	Status      Status
	ArtifactDir string
	Err         error
}

// Results is the ordered collection of per-package outcomes.
type Results []Result

// Failed reports whether any package in the run failed.
func (rs Results) Failed() bool {
	for _, r := range rs {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Executor owns the staging tree and drives the external build and upload
// tools. It is the sole mutator of the staging locations.
type Executor struct {
	tree   *StagingTree
	build  BuildTool
	upload UploadTool
	policy retry.Policy
}

// New creates an executor.
func New(tree *StagingTree, build BuildTool, upload UploadTool, policy retry.Policy) *Executor {
	return &Executor{tree: tree, build: build, upload: upload, policy: policy}
}

// Execute publishes every package in the plan, in order. A package failure
// is recorded in its Result and does not abort the remaining packages. The
// returned error is non-nil only for fatal conditions (staging conflicts),
// in which case the results collected so far are still returned.
func (e *Executor) Execute(ctx context.Context, p plan.Plan, creds Credentials) (Results, error) {
	results := make(Results, 0, p.Len())
	for _, d := range p.Packages {
		res, err := e.publishOne(ctx, d, creds)
		results = append(results, res)
		if err != nil {
			// Staging state can no longer be trusted; abort the rest.
			return results, err
		}
	}
	return results, nil
}

// publishOne runs the stage -> build -> upload -> cleanup sequence for one
// package. Once staging begins the sequence runs to completion; cleanup is
// guaranteed regardless of build or upload outcome.
func (e *Executor) publishOne(ctx context.Context, d descriptor.Descriptor, creds Credentials) (Result, error) {
	start := time.Now()
	slog.Info("Publishing package", logfields.Package(d.Name), logfields.Manifest(d.Manifest))

	if err := e.tree.StageManifest(d.Manifest); err != nil {
		var conflict *StagingConflictError
		if errors.As(err, &conflict) {
			// The leftover is not ours to remove; abort before touching it.
			slog.Error("Staging conflict detected, aborting remaining plan",
				logfields.Package(d.Name), logfields.Stage("staging"), logfields.Error(err))
			cerr := pkgerrors.StagingConflict(conflict.Path)
			return failed(d.Name, cerr), cerr
		}
		// A partial stage (e.g. missing manifest file) is ours; clear it.
		if cerr := e.tree.Cleanup(); cerr != nil {
			slog.Warn("Staging cleanup incomplete", logfields.Package(d.Name), logfields.Error(cerr))
		}
		return failed(d.Name, pkgerrors.PackageBuildFailed(d.Name, err)), nil
	}
	defer func() {
		if err := e.tree.Cleanup(); err != nil {
			slog.Warn("Staging cleanup incomplete", logfields.Package(d.Name), logfields.Error(err))
		}
	}()

	if d.DocOverride != "" {
		if err := doccheck.Validate(filepath.Join(e.tree.root, d.DocOverride)); err != nil {
			return failed(d.Name, pkgerrors.PackageBuildFailed(d.Name, err)), nil
		}
		if err := e.tree.StageDocOverride(d.DocOverride); err != nil {
			return failed(d.Name, pkgerrors.PackageBuildFailed(d.Name, err)), nil
		}
	}

	artifactDir, err := e.build.Build(ctx, d.Name)
	if err != nil {
		slog.Error("Package build failed",
			logfields.Package(d.Name), logfields.Stage("build"), logfields.Error(err))
		return failed(d.Name, pkgerrors.PackageBuildFailed(d.Name, err)), nil
	}

	err = e.policy.Run(ctx, func() error {
		return e.upload.Upload(ctx, d.Name, artifactDir, creds)
	}, uploadRetryable)
	if err != nil {
		slog.Error("Package upload failed",
			logfields.Package(d.Name), logfields.Stage("upload"), logfields.Error(err))
		return failed(d.Name, classifyUpload(d.Name, err)), nil
	}

	slog.Info("Package published",
		logfields.Package(d.Name),
		logfields.ArtifactDir(artifactDir),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return Result{Name: d.Name, Status: StatusSucceeded, ArtifactDir: artifactDir}, nil
}

// uploadRetryable reports whether an upload failure is worth retrying.
// Only transport-level failures qualify; auth rejections never do.
func uploadRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func failed(name string, err error) Result {
	return Result{Name: name, Status: StatusFailed, Err: err}
}

// classifyUpload maps a typed upload failure to the structured error the CLI
// turns into an exit code. Auth rejections and network failures keep their
// own categories; anything else is a generic upload failure.
func classifyUpload(name string, err error) error {
	var ae *AuthError
	if errors.As(err, &ae) {
		return pkgerrors.UploadAuthFailed(name, err)
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return pkgerrors.UploadNetworkError(name, err)
	}
	return pkgerrors.PackageUploadFailed(name, err)
}

// Report logs one line per package and returns true iff every package
// succeeded. Partial failures stay diagnosable without re-running the plan.
func Report(results Results) bool {
	for _, r := range results {
		if r.Status == StatusSucceeded {
			slog.Info("Publish result",
				logfields.Package(r.Name),
				logfields.Status(string(r.Status)),
				logfields.ArtifactDir(r.ArtifactDir))
		} else {
			slog.Error("Publish result",
				logfields.Package(r.Name),
				logfields.Status(string(r.Status)),
				logfields.Error(r.Err))
		}
	}
	return !results.Failed()
}
