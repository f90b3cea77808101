package pipeline

import (
	"context"
	"sync"

	"docscan/pkg/models"
)

// Slot tracks one independent document slot (business license and bankbook
// run as separate slots with no shared mutable state). Each upload issues a
// run token; a response committing with a stale token is discarded, so a
// slow earlier run can never overwrite the result of a newer one.
//
// Slot and Form exist for embedding callers that keep a long-lived form
// with both documents in flight at once. The CLI binary is single-shot and
// drives Pipeline.Run directly.
type Slot struct {
	mu     sync.Mutex
	name   string
	token  uint64
	status Status
	result *Result
}

// NewSlot creates an idle slot.
func NewSlot(name string) *Slot {
	return &Slot{name: name, status: StatusIdle}
}

// Name returns the slot's identifier.
func (s *Slot) Name() string {
	return s.name
}

// Begin issues a new run token and moves the slot to OCR-pending. Any
// earlier in-flight run is implicitly invalidated.
func (s *Slot) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.status = StatusOCRPending
	return s.token
}

// Busy reports whether a run is in flight; callers disable re-submission
// while true.
func (s *Slot) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusOCRPending
}

// Complete commits a run's result if its token is still current. Returns
// false when the response is stale and was discarded.
func (s *Slot) Complete(token uint64, result *Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.result = result
	if result != nil {
		s.status = result.Status
	} else {
		s.status = StatusOCRFailed
	}
	return true
}

// Clear discards the slot's attachment and result. The token bump makes any
// still-in-flight response stale.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.status = StatusIdle
	s.result = nil
}

// Status returns the slot's current status.
func (s *Slot) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result returns the last committed result, or nil.
func (s *Slot) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// RunSlot runs the pipeline for a slot, committing the result only when the
// run is still the slot's current one.
func (p *Pipeline) RunSlot(ctx context.Context, slot *Slot, req Request) (*Result, error) {
	token := slot.Begin()
	result, err := p.Run(ctx, req)
	if !slot.Complete(token, result) {
		p.log.Info().
			Str("slot", slot.Name()).
			Uint64("token", token).
			Msg("Discarding stale pipeline response")
	}
	return result, err
}

// Form is the shared editable form state the two slots merge into. Field
// merges are per field name, and fields the user already edited are never
// overwritten; freshly extracted evidence replaces earlier extracted values.
type Form struct {
	mu     sync.Mutex
	fields models.DocumentFields
	edited map[string]bool
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{edited: make(map[string]bool)}
}

// MarkEdited records a manual user edit; extraction no longer touches the field.
func (f *Form) MarkEdited(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Set(name, value)
	f.edited[name] = true
}

// Apply merges non-empty extracted fields into the form, skipping fields the
// user edited. Returns the names of fields updated.
func (f *Form) Apply(extracted *models.DocumentFields) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var updated []string
	for _, name := range models.FieldNames() {
		value := extracted.Get(name)
		if value == "" || f.edited[name] {
			continue
		}
		f.fields.Set(name, value)
		updated = append(updated, name)
	}
	return updated
}

// Fields returns a snapshot of the form's current values.
func (f *Form) Fields() models.DocumentFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}
