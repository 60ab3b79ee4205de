// Package editor owns a page's draft record and drives the submit and delete
// round trips.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
	"mediassist/internal/validation"
)

var (
	ErrNotOpen = errors.New("editor is not open")
	ErrBusy    = errors.New("a submission is in progress")

	// ErrNotEditable is returned when a change would touch the draft's own
	// identifier. Add drafts stay creates and edit drafts keep their target.
	ErrNotEditable = errors.New("not editable")
)

type State int

const (
	Closed State = iota
	OpenNew
	OpenEditing
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenNew:
		return "open (new)"
	case OpenEditing:
		return "open (editing)"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// Open reports whether the draft accepts changes.
func (s State) Open() bool {
	return s == OpenNew || s == OpenEditing
}

// Refresher reloads the list the editor writes to. *listsync.List implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Notifier shows the outcome of a mutation to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

type Option func(*config)

type config struct {
	notifier Notifier
	log      *zap.Logger
}

func WithNotifier(n Notifier) Option {
	return func(c *config) { c.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

// Editor is safe for concurrent use.
type Editor[R clinic.Record] struct {
	schema   clinic.Schema[R]
	caller   api.Caller
	list     Refresher
	notifier Notifier
	log      *zap.Logger

	mu        sync.Mutex
	state     State
	resume    State
	draft     R
	errs      validation.ErrorMap
	submitErr string
}

func New[R clinic.Record](schema clinic.Schema[R], caller api.Caller, list Refresher, opts ...Option) *Editor[R] {
	cfg := config{notifier: nopNotifier{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Editor[R]{
		schema:   schema,
		caller:   caller,
		list:     list,
		notifier: cfg.notifier,
		log:      cfg.log,
		draft:    schema.New(),
		errs:     validation.ErrorMap{},
	}
}

// Add opens a blank draft.
func (e *Editor[R]) Add() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return ErrBusy
	}
	e.open(OpenNew, e.schema.New())
	return nil
}

// Edit opens a copy of a displayed record.
func (e *Editor[R]) Edit(rec R) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return ErrBusy
	}
	e.open(OpenEditing, e.schema.ForEdit(clinic.Clone(rec)))
	return nil
}

func (e *Editor[R]) open(state State, draft R) {
	e.state = state
	e.draft = draft
	e.errs = validation.ErrorMap{}
	e.submitErr = ""
}

// Close discards the draft.
func (e *Editor[R]) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return ErrBusy
	}
	e.state = Closed
	e.draft = e.schema.New()
	e.errs = validation.ErrorMap{}
	e.submitErr = ""
	return nil
}

// Set assigns raw form input to the draft field with the given wire name and
// clears that field's error.
func (e *Editor[R]) Set(field, raw string) error {
	if field == e.schema.Kind.IDField() {
		return fmt.Errorf("%s is %w", field, ErrNotEditable)
	}
	return e.Update(func(draft *R) error {
		return clinic.Assign(draft, field, raw)
	}, field)
}

// Update applies fn to a copy of the draft and clears the errors of the named
// fields. The draft is left unchanged when fn fails or changes the identifier.
func (e *Editor[R]) Update(fn func(draft *R) error, fields ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.writable(); err != nil {
		return err
	}
	next := clinic.Clone(e.draft)
	if err := fn(&next); err != nil {
		return err
	}
	if !sameID(e.draft.Identifier(), next.Identifier()) {
		return fmt.Errorf("%s is %w", e.schema.Kind.IDField(), ErrNotEditable)
	}
	e.draft = next
	for _, f := range fields {
		e.errs = e.errs.Without(f)
	}
	return nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (e *Editor[R]) writable() error {
	switch {
	case e.state == Submitting:
		return ErrBusy
	case !e.state.Open():
		return ErrNotOpen
	}
	return nil
}

func (e *Editor[R]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor[R]) Draft() R {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Errors returns a copy of the per-field validation errors.
func (e *Editor[R]) Errors() validation.ErrorMap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs.Clone()
}

// SubmitError is the inline message left by the last failed submission.
func (e *Editor[R]) SubmitError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitErr
}

// Submit validates the draft and, when it passes, creates or updates it. A
// draft with validation errors is never sent. On success the editor closes and
// the list is refreshed before Submit returns; a failed refresh is logged and
// does not fail the submission. On rejection or transport failure the editor
// reopens with the draft intact and an inline message.
func (e *Editor[R]) Submit(ctx context.Context) error {
	e.mu.Lock()
	if err := e.writable(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.errs = validation.Validate(e.draft)
	if !e.errs.Empty() {
		errs := e.errs.Clone()
		e.mu.Unlock()
		return &validation.Error{Fields: errs}
	}
	e.resume = e.state
	e.state = Submitting
	e.submitErr = ""
	draft := e.draft
	e.mu.Unlock()

	op, err := api.Save(ctx, e.caller, draft)
	noun := e.schema.Kind.Noun()

	if err != nil {
		msg := saveFailure(noun, err)
		e.mu.Lock()
		e.state = e.resume
		e.submitErr = msg
		e.mu.Unlock()

		e.log.Warn("save failed",
			zap.String("kind", string(e.schema.Kind)),
			zap.Stringer("operation", op),
			zap.Error(err),
		)
		e.notifier.Failure(msg)
		return err
	}

	e.mu.Lock()
	e.state = Closed
	e.draft = e.schema.New()
	e.errs = validation.ErrorMap{}
	e.mu.Unlock()

	if op == clinic.OpCreate {
		e.notifier.Success(noun + " added successfully!")
	} else {
		e.notifier.Success(noun + " updated successfully!")
	}

	if err := e.list.Refresh(ctx); err != nil {
		e.log.Warn("refresh after save failed", zap.String("kind", string(e.schema.Kind)), zap.Error(err))
	}
	return nil
}

func saveFailure(noun string, err error) string {
	if errors.Is(err, api.ErrTransport) {
		return "Error saving " + strings.ToLower(noun) + "."
	}
	if msg := api.RejectionMessage(err); msg != "" {
		return msg
	}
	return "Failed to save " + strings.ToLower(noun) + "."
}
