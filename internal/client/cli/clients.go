package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
)

func (a *App) ListClients(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}
	a.lastList = a.ListClients

	err := a.clientsVM.FetchList(ctx)
	printState(a.out, a.clientsVM.Snapshot().State, func(items []models.Client) { printClients(a.out, items) })
	return err
}

func (a *App) AddClient(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}
	a.clientsVM.CancelEditing()

	var vals [4]string
	for i, label := range []string{"Name", "Email", "Phone", "Address (optional)"} {
		v, err := a.prompt(label)
		if err != nil {
			return err
		}
		vals[i] = v
	}

	a.clientsVM.UpdateForm(func(f *viewmodel.ClientForm) {
		f.SetName(vals[0])
		f.SetEmail(vals[1])
		f.SetPhone(vals[2])
		f.SetAddress(vals[3])
	})
	return submit(ctx, a, a.clientsVM)
}

func (a *App) EditClient(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, err := GetID(a.reader, args, "Enter client id to edit", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	item, err := a.api.Clients().Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "✗ could not load client #%d: %v\n", id, err)
		return err
	}

	a.clientsVM.StartEditing(item)

	var cur viewmodel.ClientForm
	a.clientsVM.ViewForm(func(f *viewmodel.ClientForm) { cur = *f })

	name, err := a.promptDefault("Name", cur.Name)
	if err != nil {
		return err
	}
	email, err := a.promptDefault("Email", cur.Email)
	if err != nil {
		return err
	}
	phone, err := a.promptDefault("Phone", cur.Phone)
	if err != nil {
		return err
	}
	address, err := a.promptDefault("Address", cur.Address)
	if err != nil {
		return err
	}

	a.clientsVM.UpdateForm(func(f *viewmodel.ClientForm) {
		f.SetName(name)
		f.SetEmail(email)
		f.SetPhone(phone)
		f.SetAddress(address)
	})
	return submit(ctx, a, a.clientsVM)
}

func (a *App) DeleteClient(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, err := GetID(a.reader, args, "Enter client id to delete", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	return remove(ctx, a, a.clientsVM, id)
}
