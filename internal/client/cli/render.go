package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printClients(w io.Writer, items []models.Client) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no clients")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tADDRESS")
	for _, c := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Address)
	}
	_ = tw.Flush()
}

func printServices(w io.Writer, items []models.Service) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no services")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tMINUTES\tDESCRIPTION")
	for _, s := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", s.ID, s.Name, strconv.FormatFloat(s.Price, 'f', 2, 64), s.Duration, s.Description)
	}
	_ = tw.Flush()
}

func printAppointments(w io.Writer, items []models.Appointment, describe func(models.Appointment) string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no appointments")
		return
	}
	for _, ap := range items {
		fmt.Fprintf(w, "#%d  %s\n", ap.ID, describe(ap))
		if ap.Notes != "" {
			fmt.Fprintf(w, "     %s\n", ap.Notes)
		}
	}
}

func printInvoices(w io.Writer, items []models.Invoice) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no invoices")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tAPPOINTMENT\tTOTAL")
	for _, inv := range items {
		appt := "-"
		if inv.AppointmentID != 0 {
			appt = "#" + strconv.FormatInt(inv.AppointmentID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", inv.ID, inv.Date, appt, strconv.FormatFloat(inv.Total, 'f', 2, 64))
	}
	_ = tw.Flush()
}

// printState prints a list state; render is only called on success.
func printState[T any](w io.Writer, st viewmodel.State[T], render func([]T)) {
	switch st.Phase {
	case viewmodel.PhaseLoading:
		fmt.Fprintln(w, "loading...")
	case viewmodel.PhaseError:
		fmt.Fprintln(w, st.Message)
		fmt.Fprintln(w, "type 'retry' to try again")
	case viewmodel.PhaseSuccess:
		render(st.Items)
	}
}

var fieldOrder = []string{
	validation.FieldName, validation.FieldEmail, validation.FieldPhone, validation.FieldDescription,
	validation.FieldPrice, validation.FieldDuration, validation.FieldClient, validation.FieldService,
	validation.FieldDate, validation.FieldTime, validation.FieldStatus,
}

func printFieldErrors(w io.Writer, errs map[string]string) {
	for _, f := range fieldOrder {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(w, "  %s: %s\n", f, msg)
		}
	}
}
