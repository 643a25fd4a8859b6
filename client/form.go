package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"househunters/listing"
)

// FormState is the phase of an admin form.
type FormState int

const (
	FormEditing FormState = iota
	FormSubmitting
	FormSucceeded
)

func (s FormState) String() string {
	switch s {
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	case FormSucceeded:
		return "succeeded"
	}
	return "unknown"
}

var (
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	ErrNothingPending   = errors.New("no deletion has been requested")
)

// ReloadFunc refreshes whatever list a mutation affects. It runs only after
// the server confirmed the mutation.
type ReloadFunc func(ctx context.Context) error

// PropertyForm drives the create and edit forms:
// editing -> submitting -> succeeded, or back to editing with Err set.
type PropertyForm struct {
	client *Client
	id     int64
	reload ReloadFunc

	mu     sync.Mutex
	input  PropertyInput
	state  FormState
	err    error
	result *listing.Property
}

// NewCreateForm starts an empty create form.
func NewCreateForm(c *Client, reload ReloadFunc) *PropertyForm {
	return &PropertyForm{client: c, reload: reload, input: PropertyInput{Availability: listing.Available}}
}

// NewEditForm starts an edit form prefilled from p.
func NewEditForm(c *Client, p listing.Property, reload ReloadFunc) *PropertyForm {
	return &PropertyForm{client: c, id: p.ID, reload: reload, input: InputFromProperty(p)}
}

// Edit changes the form input. It is ignored while a submit is running.
func (f *PropertyForm) Edit(fn func(in *PropertyInput)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	fn(&f.input)
	f.state = FormEditing
}

func (f *PropertyForm) Input() PropertyInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

func (f *PropertyForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed submit, if any.
func (f *PropertyForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Result returns the saved property after a successful submit.
func (f *PropertyForm) Result() *listing.Property {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Submit validates the input locally, sends it, and on success runs the
// reload. A validation failure never reaches the network. A failed request
// returns the form to editing with the error kept; a failed reload is
// returned but the form stays succeeded since the server has the change.
func (f *PropertyForm) Submit(ctx context.Context) (*listing.Property, error) {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if err := f.input.Validate(); err != nil {
		f.state, f.err = FormEditing, err
		f.mu.Unlock()
		return nil, err
	}
	input, id := f.input, f.id
	f.state, f.err = FormSubmitting, nil
	f.mu.Unlock()

	var (
		saved *listing.Property
		err   error
	)
	if id == 0 {
		saved, err = f.client.Admin.CreateProperty(ctx, input)
	} else {
		saved, err = f.client.Admin.UpdateProperty(ctx, id, input.Patch())
	}

	f.mu.Lock()
	if err != nil {
		f.state, f.err = FormEditing, err
		f.mu.Unlock()
		return nil, err
	}
	f.state, f.result = FormSucceeded, saved
	if id == 0 {
		f.id = saved.ID
	}
	f.mu.Unlock()

	if f.reload != nil {
		if err := f.reload(ctx); err != nil {
			return saved, fmt.Errorf("reload after save: %w", err)
		}
	}
	return saved, nil
}

// DeleteConfirmation is the two-step delete: Request records the intent,
// Confirm performs it.
type DeleteConfirmation struct {
	client *Client
	reload ReloadFunc

	mu      sync.Mutex
	pending int64
	has     bool
}

func NewDeleteConfirmation(c *Client, reload ReloadFunc) *DeleteConfirmation {
	return &DeleteConfirmation{client: c, reload: reload}
}

// Request records the property to delete. Nothing is sent.
func (d *DeleteConfirmation) Request(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending, d.has = id, true
}

// Pending returns the requested id, if any.
func (d *DeleteConfirmation) Pending() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.has
}

// Cancel drops the pending request.
func (d *DeleteConfirmation) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending, d.has = 0, false
}

// Confirm deletes the pending property and then reloads. If the delete fails
// the request stays pending so it can be retried or cancelled.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	id, ok := d.pending, d.has
	d.mu.Unlock()
	if !ok {
		return ErrNothingPending
	}
	if err := d.client.Admin.DeleteProperty(ctx, id); err != nil {
		return err
	}
	d.Cancel()
	if d.reload != nil {
		if err := d.reload(ctx); err != nil {
			return fmt.Errorf("reload after delete: %w", err)
		}
	}
	return nil
}

// CreateWithImages creates a property and then uploads its images against
// the new id. If the upload fails the created property is still returned
// with the error.
func CreateWithImages(ctx context.Context, c *Client, in PropertyInput, files []FileUpload) (*listing.Property, *UploadResult, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	p, err := c.Admin.CreateProperty(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return p, nil, nil
	}
	res, err := c.Uploads.UploadImages(ctx, p.ID, files)
	if err != nil {
		return p, nil, fmt.Errorf("upload images for property %d: %w", p.ID, err)
	}
	return p, res, nil
}
