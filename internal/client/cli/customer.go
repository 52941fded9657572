package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/routing"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *App) account(ctx context.Context, _ []string) error {
	if err := a.enter(ctx, routing.PathClientDashboard, nil); err != nil {
		return err
	}
	acc, err := a.accounts.Get(ctx)
	if err != nil {
		return err
	}
	a.printf("Account %s  %s\nBalance: %.2f\n", acc.AccountNumber, acc.OwnerFullName, acc.Balance)
	return nil
}

func (a *App) ops(ctx context.Context, _ []string) error {
	if err := a.enter(ctx, routing.PathClientDashboard, nil); err != nil {
		return err
	}
	list, err := a.operations.List(ctx)
	if err != nil {
		return err
	}
	a.printOperations(list)
	return nil
}

func (a *App) op(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathClientOperation, map[string]string{"id": args[0]}); err != nil {
		return err
	}
	o, err := a.operations.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printOperation(o)
	return nil
}

func (a *App) newOp(ctx context.Context, _ []string) error {
	if err := a.enter(ctx, routing.PathClientNewOperation, nil); err != nil {
		return err
	}

	kind, err := getSimpleText(a.reader, "Type (DEPOSIT, WITHDRAWAL, TRANSFER)", a.out)
	if err != nil {
		return err
	}
	rawAmount, err := getSimpleText(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", rawAmount)
	}
	req := models.OperationRequest{Type: models.OperationType(strings.ToUpper(kind)), Amount: amount}
	if req.Type == models.OperationTransfer {
		if req.DestinationAccountNumber, err = getSimpleText(a.reader, "Destination account", a.out); err != nil {
			return err
		}
	}

	o, err := a.operations.Create(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Operation %d created: %s\n", o.ID, o.Status)
	if models.RequiresDocument(o.Amount) && !o.HasDocument {
		a.printf("Amounts above %d need a supporting document: upload %d <file>\n", models.DocumentThreshold, o.ID)
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathClientOperation, map[string]string{"id": args[0]}); err != nil {
		return err
	}
	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	ack, err := a.operations.UploadDocument(ctx, id, filepath.Base(args[1]), f)
	if err != nil {
		return err
	}
	a.printf("Uploaded: %s\n", ack)
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathClientDashboard, nil); err != nil {
		return err
	}
	b, err := a.operations.DownloadDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], b, 0o600); err != nil {
		return err
	}
	a.printf("Saved %d bytes to %s\n", len(b), args[1])
	return nil
}

func (a *App) printOperations(list []models.Operation) {
	if len(list) == 0 {
		a.printf("No operations\n")
		return
	}
	for _, o := range list {
		a.printf("%6d  %-10s %12.2f  %-9s %s\n", o.ID, o.Type, o.Amount, o.Status, o.CreatedAt)
	}
}

func (a *App) printOperation(o *models.Operation) {
	a.printf("Operation %d: %s %.2f (%s)\n", o.ID, o.Type, o.Amount, o.Status)
	if o.DestinationAccountNumber != "" {
		a.printf("  to %s\n", o.DestinationAccountNumber)
	}
	if o.Message != "" {
		a.printf("  %s\n", o.Message)
	}
	if o.RequiresDocument {
		a.printf("  document: %t\n", o.HasDocument)
	}
}
