package commands

import (
	"context"
	"fmt"
	"strings"

	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/service"
)

type profilesCmd struct{}

func (profilesCmd) Name() string { return "profiles" }
func (profilesCmd) Description() string {
	return "List credit profiles, optionally filtered by name or creator"
}
func (profilesCmd) Usage() string { return "profiles [search]" }

// Run без аргумента сбрасывает строку поиска.
func (profilesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	search := strings.Join(args, " ")
	v, err := newClient(cfg).Profiles(ctx, &search)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Profiles(v))
	return nil
}

type refreshCmd struct{}

func (refreshCmd) Name() string        { return "refresh" }
func (refreshCmd) Description() string { return "Reload credit profiles from the ledger" }
func (refreshCmd) Usage() string       { return "refresh" }

func (refreshCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	v, err := newClient(cfg).Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Profiles(v))
	return nil
}

type profileAddCmd struct{}

func (profileAddCmd) Name() string { return "profile-add" }
func (profileAddCmd) Description() string {
	return "Encrypt a credit score and submit it on-chain"
}
func (profileAddCmd) Usage() string { return "profile-add <name> <score> <activity>" }

func (profileAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	form := service.CreateForm{Name: args[0], Score: args[1], Activity: args[2]}
	c := newClient(cfg)
	res, err := c.Create(ctx, form)
	if err != nil {
		if st, serr := c.Status(ctx); serr == nil {
			fmt.Fprint(Out, renderer.Banner(st))
		}
		return err
	}
	fmt.Fprint(Out, renderer.Created(res))
	return nil
}

type profileShowCmd struct{}

func (profileShowCmd) Name() string        { return "profile-show" }
func (profileShowCmd) Description() string { return "Show credit profile details and analysis" }
func (profileShowCmd) Usage() string       { return "profile-show <id>" }

func (profileShowCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	v, err := newClient(cfg).Detail(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Detail(v))
	return nil
}

type verifyCmd struct{}

func (verifyCmd) Name() string { return "verify" }
func (verifyCmd) Description() string {
	return "Decrypt a profile and verify the proof on-chain (repeat to hide the value)"
}
func (verifyCmd) Usage() string { return "verify <id>" }

func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c := newClient(cfg)
	v, err := c.Verify(ctx, args[0])
	if err != nil {
		if st, serr := c.Status(ctx); serr == nil {
			fmt.Fprint(Out, renderer.Banner(st))
		}
		return err
	}
	fmt.Fprint(Out, renderer.Verified(v.Result))
	fmt.Fprint(Out, renderer.Detail(v.Detail))
	return nil
}

type profileCloseCmd struct{}

func (profileCloseCmd) Name() string { return "profile-close" }
func (profileCloseCmd) Description() string {
	return "Close the profile view and forget its locally decrypted value"
}
func (profileCloseCmd) Usage() string { return "profile-close <id>" }

func (profileCloseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := newClient(cfg).CloseDetail(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Closed %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(profilesCmd{})
	RegisterCmd(profileCloseCmd{})
	RegisterCmd(refreshCmd{})
	RegisterCmd(profileAddCmd{})
	RegisterCmd(profileShowCmd{})
	RegisterCmd(verifyCmd{})
}
