package listquery

import (
	"context"
	"errors"
	"fmt"
)

// ErrMutationPending is returned when a bulk mutation is submitted while a
// previous one from the same view has not finished.
var ErrMutationPending = errors.New("a bulk mutation is already pending")

// Record is a domain entity as seen by the mutation dispatcher: only the
// identity matters. A zero id means the record has not been created yet.
type Record interface {
	RecordID() int64
}

// MutationSource issues create/update/delete requests against the remote
// collection.
type MutationSource interface {
	Create(ctx context.Context, rec any) error
	Update(ctx context.Context, id int64, rec any) error
	DeleteOne(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) error
}

// Mutator dispatches mutations and, on server confirmation, invalidates the
// controller cache so the next read reflects server state. Dispatch is never
// optimistic.
type Mutator[T any] struct {
	source    MutationSource
	ctrl      *Controller[T]
	selection *Selection
	notify    Notifier

	mu chan struct{} // capacity 1, held while a bulk mutation is pending
}

func NewMutator[T any](source MutationSource, ctrl *Controller[T], selection *Selection, notify Notifier) *Mutator[T] {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Mutator[T]{
		source:    source,
		ctrl:      ctrl,
		selection: selection,
		notify:    notify,
		mu:        make(chan struct{}, 1),
	}
}

// DeleteOne deletes a single record and re-fetches the current page.
func (m *Mutator[T]) DeleteOne(ctx context.Context, id int64) error {
	if err := m.source.DeleteOne(ctx, id); err != nil {
		m.notify.Error(err.Error())
		return err
	}
	m.notify.Success("record deleted")
	m.ctrl.Invalidate()
	return nil
}

// DeleteMany issues one batched delete carrying the full id set. On success
// the selection is cleared unconditionally. A second bulk delete cannot be
// submitted while one is pending.
func (m *Mutator[T]) DeleteMany(ctx context.Context, ids []int64) error {
	select {
	case m.mu <- struct{}{}:
	default:
		return ErrMutationPending
	}
	defer func() { <-m.mu }()

	if err := m.source.DeleteMany(ctx, ids); err != nil {
		m.notify.Error(err.Error())
		return err
	}
	if m.selection != nil {
		m.selection.Clear()
	}
	m.notify.Success(fmt.Sprintf("%d records deleted", len(ids)))
	m.ctrl.Invalidate()
	return nil
}

// CreateOrUpdate dispatches a create when rec has no identity and an update
// otherwise. A nil return means the caller may close its edit surface; on
// error prior state is untouched so the user can retry.
func (m *Mutator[T]) CreateOrUpdate(ctx context.Context, rec Record) error {
	var err error
	if id := rec.RecordID(); id == 0 {
		err = m.source.Create(ctx, rec)
	} else {
		err = m.source.Update(ctx, id, rec)
	}
	if err != nil {
		m.notify.Error(err.Error())
		return err
	}
	m.notify.Success("record saved")
	m.ctrl.Invalidate()
	return nil
}
