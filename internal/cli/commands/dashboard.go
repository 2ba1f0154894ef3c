package commands

import (
	"context"
	"fmt"

	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/service"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Show statistics and recent operations" }
func (dashboardCmd) Usage() string       { return "dashboard" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	v, err := newClient(cfg).Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Dashboard(v))
	return nil
}

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show the operation history of this session" }
func (historyCmd) Usage() string       { return "history" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	entries, err := newClient(cfg).History(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.History(entries))
	return nil
}

// flowCmd не обращается к серверу.
type flowCmd struct{}

func (flowCmd) Name() string        { return "flow" }
func (flowCmd) Description() string { return "Show the FHE credit scoring flow" }
func (flowCmd) Usage() string       { return "flow" }

func (flowCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprint(Out, renderer.Flow(service.Flow))
	return nil
}

func init() {
	RegisterCmd(dashboardCmd{})
	RegisterCmd(historyCmd{})
	RegisterCmd(flowCmd{})
}
