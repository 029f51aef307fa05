package viewmodel

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// Invoices issues invoices and lists them per client. It keeps no state.
type Invoices struct {
	api client.Client
	log logging.Logger
}

func NewInvoices(api client.Client, opts ...Option) *Invoices {
	s := newSettings(opts)
	return &Invoices{api: api, log: s.log.With("resource", "invoices")}
}

// Issue validates and creates an invoice, returning it as stored by the
// server together with a status line for the user.
func (iv *Invoices) Issue(ctx context.Context, inv models.Invoice) (models.Invoice, string, error) {
	if v := validation.ValidateInvoice(inv); v.HasErrors() {
		return models.Invoice{}, "✗ invalid invoice: " + v.Errors()[0].Message, invalid(v)
	}

	created, err := iv.api.CreateInvoice(ctx, inv)
	if err != nil {
		iv.log.Warn(ctx, "invoice create failed", "client_id", inv.ClientID, "err", err)
		return models.Invoice{}, "✗ error creating invoice: " + userMessage(err), failed(err)
	}
	return created, fmt.Sprintf("✓ invoice #%d created successfully", created.ID), nil
}

func (iv *Invoices) ByClient(ctx context.Context, clientID int64) ([]models.Invoice, error) {
	items, err := iv.api.InvoicesByClient(ctx, clientID)
	if err != nil {
		iv.log.Warn(ctx, "invoice list failed", "client_id", clientID, "err", err)
		return nil, failed(err)
	}
	return items, nil
}
