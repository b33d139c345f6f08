package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pkgship/internal/config"
)

// PlanCmd implements the 'plan' command: evaluation without side effects.
type PlanCmd struct {
	Revision string `short:"r" help:"Revision to plan for" default:"HEAD"`
	RepoPath string `help:"Path to the repository working tree" default:"."`
}

func (p *PlanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	pl, err := resolvePlan(context.Background(), cfg, p.RepoPath, p.Revision)
	if err != nil {
		return err
	}

	if pl.Len() == 0 {
		fmt.Println("no packages to publish")
		return nil
	}
	for _, name := range pl.Names() {
		fmt.Println(name)
	}
	return nil
}
