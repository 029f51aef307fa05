package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
)

func (a *App) ListServices(ctx context.Context) error {
	a.lastList = a.ListServices

	err := a.servicesVM.FetchList(ctx)
	printState(a.out, a.servicesVM.Snapshot().State, func(items []models.Service) { printServices(a.out, items) })
	return err
}

func (a *App) AddService(ctx context.Context) error {
	a.servicesVM.CancelEditing()

	var vals [4]string
	for i, label := range []string{"Name", "Description", "Price", "Duration (minutes)"} {
		v, err := a.prompt(label)
		if err != nil {
			return err
		}
		vals[i] = v
	}

	a.servicesVM.UpdateForm(func(f *viewmodel.ServiceForm) {
		f.SetName(vals[0])
		f.SetDescription(vals[1])
		f.SetPrice(vals[2])
		f.SetDuration(vals[3])
	})
	return submit(ctx, a, a.servicesVM)
}

func (a *App) EditService(ctx context.Context, args []string) error {
	id, err := GetID(a.reader, args, "Enter service id to edit", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	item, err := a.api.Services().Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "✗ could not load service #%d: %v\n", id, err)
		return err
	}

	a.servicesVM.StartEditing(item)

	var cur viewmodel.ServiceForm
	a.servicesVM.ViewForm(func(f *viewmodel.ServiceForm) { cur = *f })

	labels := []string{"Name", "Description", "Price", "Duration (minutes)"}
	current := []string{cur.Name, cur.Description, cur.Price, cur.Duration}
	vals := make([]string, len(labels))
	for i := range labels {
		v, err := a.promptDefault(labels[i], current[i])
		if err != nil {
			return err
		}
		vals[i] = v
	}

	a.servicesVM.UpdateForm(func(f *viewmodel.ServiceForm) {
		f.SetName(vals[0])
		f.SetDescription(vals[1])
		f.SetPrice(vals[2])
		f.SetDuration(vals[3])
	})
	return submit(ctx, a, a.servicesVM)
}

func (a *App) DeleteService(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, err := GetID(a.reader, args, "Enter service id to delete", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	return remove(ctx, a, a.servicesVM, id)
}
