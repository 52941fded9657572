package cli

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/routing"
)

func (a *App) pending(ctx context.Context, _ []string) error {
	if err := a.enter(ctx, routing.PathAgentDashboard, nil); err != nil {
		return err
	}
	list, err := a.agent.Pending(ctx)
	if err != nil {
		return err
	}
	a.printOperations(list)
	return nil
}

func (a *App) review(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathAgentOperation, map[string]string{"id": args[0]}); err != nil {
		return err
	}
	o, err := a.agent.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printOperation(o)
	if o.HasDocument {
		a.printf("  %s\n", a.agent.DocumentURL(id))
	}
	return nil
}

func (a *App) approve(ctx context.Context, args []string) error {
	return a.decide(ctx, args, true)
}

func (a *App) reject(ctx context.Context, args []string) error {
	return a.decide(ctx, args, false)
}

func (a *App) decide(ctx context.Context, args []string, approve bool) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathAgentOperation, map[string]string{"id": args[0]}); err != nil {
		return err
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	decide := a.agent.Reject
	if approve {
		decide = a.agent.Approve
	}
	o, err := decide(ctx, id, comment)
	if err != nil {
		return err
	}
	a.printf("Operation %d is now %s\n", o.ID, o.Status)
	return nil
}
