package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
)

func (a *App) ListAppointments(ctx context.Context) error {
	a.lastList = a.ListAppointments

	vm := a.appointments(ctx)
	err := vm.FetchList(ctx)
	printState(a.out, vm.Snapshot().State, func(items []models.Appointment) {
		printAppointments(a.out, items, vm.Describe)
	})
	return err
}

func (a *App) AddAppointment(ctx context.Context) error {
	vm := a.appointments(ctx)
	vm.CancelEditing()
	return a.fillAppointment(ctx, vm, viewmodel.AppointmentForm{Status: models.DefaultStatus})
}

func (a *App) EditAppointment(ctx context.Context, args []string) error {
	id, err := GetID(a.reader, args, "Enter appointment id to edit", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	item, err := a.api.Appointments().Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "✗ could not load appointment #%d: %v\n", id, err)
		return err
	}

	vm := a.appointments(ctx)
	vm.StartEditing(item)

	var cur viewmodel.AppointmentForm
	vm.ViewForm(func(f *viewmodel.AppointmentForm) { cur = *f })
	return a.fillAppointment(ctx, vm, cur)
}

func (a *App) DeleteAppointment(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, err := GetID(a.reader, args, "Enter appointment id to delete", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}
	return remove(ctx, a, a.appointments(ctx).CRUD, id)
}

// History lists every appointment of one client.
func (a *App) History(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, err := GetID(a.reader, args, "Enter client id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "✗", err)
		return err
	}

	vm := a.appointments(ctx)
	items, err := vm.History(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "✗ could not load history:", err)
		return err
	}
	fmt.Fprintf(a.out, "appointments of %s:\n", vm.ClientName(id))
	printAppointments(a.out, items, vm.Describe)
	return nil
}

// fillAppointment prompts for every field, starting from cur, and saves.
func (a *App) fillAppointment(ctx context.Context, vm *viewmodel.Appointments, cur viewmodel.AppointmentForm) error {
	if !vm.LookupsLoaded() {
		_ = vm.LoadLookups(ctx)
	}

	fmt.Fprintln(a.out, "clients:")
	for _, c := range vm.Clients() {
		fmt.Fprintf(a.out, "  %d  %s\n", c.ID, c.Name)
	}
	fmt.Fprintln(a.out, "services:")
	for _, s := range vm.Services() {
		fmt.Fprintf(a.out, "  %d  %s (%d min)\n", s.ID, s.Name, s.Duration)
	}

	clientID, err := a.promptID("Client id", cur.ClientID)
	if err != nil {
		return err
	}
	serviceID, err := a.promptID("Service id", cur.ServiceID)
	if err != nil {
		return err
	}

	date := cur.Date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	if date, err = a.promptDefault("Date (YYYY-MM-DD)", date); err != nil {
		return err
	}
	tm, err := a.promptDefault("Time (HH:MM)", cur.Time)
	if err != nil {
		return err
	}
	status, err := a.promptDefault("Status ("+statusChoices()+")", cur.Status.Label())
	if err != nil {
		return err
	}
	notes, err := a.promptDefault("Notes", cur.Notes)
	if err != nil {
		return err
	}

	vm.SelectClient(clientID)
	vm.SelectService(serviceID)
	vm.UpdateForm(func(f *viewmodel.AppointmentForm) {
		f.SetDate(date)
		f.SetTime(tm)
		f.SetStatus(parseStatus(status))
		f.SetNotes(notes)
	})
	return submit(ctx, a, vm.CRUD)
}

// promptID reads an id, keeping current on an empty answer. Text that is
// not a number selects nothing, which the form reports.
func (a *App) promptID(label string, current int64) (int64, error) {
	def := ""
	if current != 0 {
		def = strconv.FormatInt(current, 10)
	}
	text, err := a.promptDefault(label, def)
	if err != nil {
		return 0, err
	}
	id, err := parseID(text)
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// parseStatus accepts the English label or the backend value in any case.
func parseStatus(s string) models.AppointmentStatus {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, st := range models.AppointmentStatuses() {
		if s == string(st) || s == st.Label() {
			return st
		}
	}
	return models.AppointmentStatus(s)
}

func statusChoices() string {
	labels := make([]string, 0, 4)
	for _, st := range models.AppointmentStatuses() {
		labels = append(labels, st.Label())
	}
	return strings.Join(labels, "/")
}
