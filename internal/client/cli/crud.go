package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
)

// submit saves vm's form and reports the outcome. On failure the field
// errors are printed and edit mode is left so the next command starts clean.
func submit[T models.Entity, F viewmodel.Form[T]](ctx context.Context, a *App, vm *viewmodel.CRUD[T, F]) error {
	err := vm.Save(ctx, nil)
	if errors.Is(err, viewmodel.ErrBusy) {
		fmt.Fprintln(a.out, "✗ another operation is still running")
		return err
	}

	fmt.Fprintln(a.out, vm.Snapshot().Status)
	if errors.Is(err, viewmodel.ErrInvalidDraft) {
		vm.ViewForm(func(f F) { printFieldErrors(a.out, f.Errors()) })
	}
	if err != nil {
		// Each command prompts for every field again, so there is no open
		// dialog to keep; a stale edit would turn the next add into an update.
		vm.CancelEditing()
	}
	return err
}

// remove deletes id through vm and prints the status line.
func remove[T models.Entity, F viewmodel.Form[T]](ctx context.Context, a *App, vm *viewmodel.CRUD[T, F], id int64) error {
	err := vm.Delete(ctx, id)
	if errors.Is(err, viewmodel.ErrBusy) {
		fmt.Fprintln(a.out, "✗ another operation is still running")
		return err
	}
	fmt.Fprintln(a.out, vm.Snapshot().Status)
	return err
}

func (a *App) prompt(label string) (string, error) {
	return GetSimpleText(a.reader, label, a.out)
}

func (a *App) promptDefault(label, current string) (string, error) {
	return GetTextWithDefault(a.reader, label, current, a.out)
}

// Retry re-runs the last list command.
func (a *App) Retry(ctx context.Context) error {
	if a.lastList == nil {
		fmt.Fprintln(a.out, "nothing to retry")
		return nil
	}
	return a.lastList(ctx)
}
