package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/descriptor"
	pkgerrors "git.home.luguber.info/inful/pkgship/internal/errors"
	"git.home.luguber.info/inful/pkgship/internal/executor"
	"git.home.luguber.info/inful/pkgship/internal/gitdiff"
	"git.home.luguber.info/inful/pkgship/internal/logfields"
	"git.home.luguber.info/inful/pkgship/internal/plan"
	"git.home.luguber.info/inful/pkgship/internal/retry"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	Revision string `short:"r" help:"Revision to publish from" default:"HEAD"`
	Event    string `help:"Triggering event kind" enum:"release,push" default:"push"`
	RepoPath string `help:"Path to the repository working tree" default:"."`
	DryRun   bool   `help:"Resolve and print the plan, then stop before building"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	slog.Info("Starting publish run",
		logfields.RunID(runID),
		logfields.Event(p.Event),
		logfields.Revision(p.Revision))

	pl, err := resolvePlan(context.Background(), cfg, p.RepoPath, p.Revision)
	if err != nil {
		return err
	}
	slog.Info("Publish plan resolved",
		logfields.RunID(runID),
		logfields.Planned(pl.Len()),
		slog.String("packages", strings.Join(pl.Names(), ",")))

	if p.DryRun {
		for _, name := range pl.Names() {
			fmt.Println(name)
		}
		return nil
	}

	creds := executor.Credentials{
		Username: os.Getenv(cfg.Upload.UsernameEnv),
		Password: os.Getenv(cfg.Upload.PasswordEnv),
	}

	tree := executor.NewStagingTree(p.RepoPath, cfg.Staging)
	build := executor.NewCommandBuildTool(p.RepoPath, cfg.Build, tree)
	upload := executor.NewCommandUploadTool(p.RepoPath, cfg.Upload)
	exec := executor.New(tree, build, upload, retry.FromConfig(cfg.Retry))

	results, execErr := exec.Execute(context.Background(), pl, creds)
	ok := executor.Report(results)
	if execErr != nil {
		// The executor already classified the abort (staging conflict).
		return execErr
	}
	if !ok {
		return runFailure(results)
	}

	slog.Info("Publish run complete", logfields.RunID(runID), logfields.Planned(pl.Len()))
	return nil
}

// runFailure picks the error the exit code is derived from: the first failed
// package's classified error, annotated with the run totals. An auth rejection
// and a flaky network thus exit differently even in a multi-package run.
func runFailure(results executor.Results) error {
	failedCount := 0
	var first *pkgerrors.PublishError
	for _, r := range results {
		if r.Status != executor.StatusFailed {
			continue
		}
		failedCount++
		if first == nil {
			errors.As(r.Err, &first)
		}
	}
	if first != nil {
		return first.
			WithContext("failed", failedCount).
			WithContext("planned", len(results))
	}
	return pkgerrors.New(pkgerrors.CategoryUpload, pkgerrors.SeverityError,
		fmt.Sprintf("%d of %d packages failed to publish", failedCount, len(results)))
}

// resolvePlan detects the changed paths for revision and evaluates the
// registry against them. Detector failures are fatal for the run: without a
// trustworthy changed-path set, activation decisions cannot be trusted.
func resolvePlan(ctx context.Context, cfg *config.Config, repoPath, revision string) (plan.Plan, error) {
	changed, err := gitdiff.NewDetector(repoPath).Detect(ctx, revision)
	if err != nil {
		return plan.Plan{}, classifyDetectError(revision, err)
	}
	slog.Debug("Change detection complete", logfields.ChangedPaths(changed.Len()))
	return plan.Build(descriptor.FromConfig(cfg), changed), nil
}

func classifyDetectError(revision string, err error) error {
	switch err.(type) {
	case *gitdiff.HistoryUnavailableError:
		return pkgerrors.HistoryUnavailable(revision, err)
	case *gitdiff.RevisionError:
		return pkgerrors.RevisionNotFound(revision, err)
	default:
		return err
	}
}
