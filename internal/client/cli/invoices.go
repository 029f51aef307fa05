package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
)

// Invoice issues an invoice for a client, optionally tied to an appointment.
func (a *App) Invoice(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	clientID, err := GetID(a.reader, args, "Enter client id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}

	apptText, err := a.prompt("Appointment id (optional)")
	if err != nil {
		return err
	}
	var apptID int64
	if apptText != "" {
		if apptID, err = parseID(apptText); err != nil {
			fmt.Fprintln(a.out, "✗", err)
			return err
		}
	}

	totalText, err := a.prompt("Total")
	if err != nil {
		return err
	}
	total, _ := strconv.ParseFloat(totalText, 64)

	date, err := a.promptDefault("Date (YYYY-MM-DD)", time.Now().Format(time.DateOnly))
	if err != nil {
		return err
	}

	_, status, err := a.invoices.Issue(ctx, models.Invoice{
		ClientID:      clientID,
		AppointmentID: apptID,
		Total:         total,
		Date:          date,
	})
	fmt.Fprintln(a.out, status)
	return err
}

func (a *App) Invoices(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	clientID, err := GetID(a.reader, args, "Enter client id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}

	items, err := a.invoices.ByClient(ctx, clientID)
	if err != nil {
		fmt.Fprintln(a.out, "✗ could not load invoices:", err)
		return err
	}
	printInvoices(a.out, items)
	return nil
}
