package commands

import (
	"context"
	"fmt"

	"CreditScoreZ/internal/config"
)

type connectCmd struct{}

func (connectCmd) Name() string        { return "connect" }
func (connectCmd) Description() string { return "Connect the signer wallet and initialize FHEVM" }
func (connectCmd) Usage() string       { return "connect" }

func (connectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := newClient(cfg).Connect(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Session(sess))
	return nil
}

type disconnectCmd struct{}

func (disconnectCmd) Name() string        { return "disconnect" }
func (disconnectCmd) Description() string { return "Disconnect the wallet and forget the session" }
func (disconnectCmd) Usage() string       { return "disconnect" }

func (disconnectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := newClient(cfg).Disconnect(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Session(sess))
	return nil
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show wallet/FHEVM gate and the transaction banner" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c := newClient(cfg)
	sess, err := c.Session(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, renderer.Session(sess))
	if !sess.Connected {
		return nil
	}
	// баннер доступен только с cookie сессии
	st, err := c.Status(ctx)
	if err != nil {
		return nil
	}
	fmt.Fprint(Out, renderer.Banner(st))
	return nil
}

func init() {
	RegisterCmd(connectCmd{})
	RegisterCmd(disconnectCmd{})
	RegisterCmd(statusCmd{})
}
