package commands

import (
	"context"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/pkgship/internal/gitdiff"
)

// DetectCmd implements the 'detect' command.
type DetectCmd struct {
	Revision string `short:"r" help:"Revision to diff against its parent" default:"HEAD"`
	RepoPath string `help:"Path to the repository working tree" default:"."`
}

func (d *DetectCmd) Run(_ *Global, _ *CLI) error {
	changed, err := gitdiff.NewDetector(d.RepoPath).Detect(context.Background(), d.Revision)
	if err != nil {
		return classifyDetectError(d.Revision, err)
	}

	paths := changed.Values()
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
