package editor

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
)

// Prompt is the blocking confirmation shown before a delete.
type Prompt struct {
	Title string
	Text  string
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// DeletePrompt returns the confirmation shown before deleting a record of kind.
func DeletePrompt(kind clinic.Kind) Prompt {
	return Prompt{
		Title: "Delete " + kind.Noun() + "?",
		Text:  "This action cannot be undone.",
	}
}

// Delete asks for confirmation and then deletes the record with the given
// identifier. It reports whether the delete was attempted: a declined prompt
// returns false and sends nothing. The list is only refreshed on success.
// Delete does not touch the draft.
func (e *Editor[R]) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	kind := e.schema.Kind
	ok, err := confirm.Confirm(ctx, DeletePrompt(kind))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := api.Delete(ctx, e.caller, kind, id); err != nil {
		msg := "Failed to delete."
		if errors.Is(err, api.ErrTransport) {
			msg = "Error deleting " + strings.ToLower(kind.Noun()) + "."
		}
		e.log.Warn("delete failed", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		e.notifier.Failure(msg)
		return true, err
	}

	e.notifier.Success("Deleted successfully.")
	if err := e.list.Refresh(ctx); err != nil {
		e.log.Warn("refresh after delete failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	return true, nil
}
