package listquery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutationCall struct {
	op  string
	id  int64
	ids []int64
}

type fakeMutationSource struct {
	mu    sync.Mutex
	calls []mutationCall
	fail  error
	block chan struct{}
}

func (s *fakeMutationSource) record(call mutationCall) error {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	fail := s.fail
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return fail
}

func (s *fakeMutationSource) Create(_ context.Context, _ any) error {
	return s.record(mutationCall{op: "create"})
}

func (s *fakeMutationSource) Update(_ context.Context, id int64, _ any) error {
	return s.record(mutationCall{op: "update", id: id})
}

func (s *fakeMutationSource) DeleteOne(_ context.Context, id int64) error {
	return s.record(mutationCall{op: "deleteOne", id: id})
}

func (s *fakeMutationSource) DeleteMany(_ context.Context, ids []int64) error {
	return s.record(mutationCall{op: "deleteMany", ids: ids})
}

func (s *fakeMutationSource) snapshot() []mutationCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mutationCall(nil), s.calls...)
}

type testRecord struct{ ID int64 }

func (r testRecord) RecordID() int64 { return r.ID }

func TestBulkDeleteIsOneBatchedRequest(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	c.Refresh()
	waitFor(t, func() bool { return c.Snapshot().HasData })

	sel := NewSelection()
	sel.SelectAll([]int64{4, 7, 9})

	ms := &fakeMutationSource{}
	notes := &recordingNotifier{}
	m := NewMutator(ms, c, sel, notes)

	require.NoError(t, m.DeleteMany(context.Background(), sel.IDs()))

	calls := ms.snapshot()
	require.Len(t, calls, 1, "one batched request, not one per id")
	assert.Equal(t, "deleteMany", calls[0].op)
	assert.Equal(t, []int64{4, 7, 9}, calls[0].ids)

	assert.Equal(t, 0, sel.Count(), "selection cleared after bulk delete")
	waitFor(t, func() bool { return src.callCount() == 2 }) // list re-fetched
	assert.Equal(t, 1, notes.successCount())
}

func TestBulkDeleteFailureKeepsSelection(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	c.Refresh()
	waitFor(t, func() bool { return c.Snapshot().HasData })
	fetchesBefore := src.callCount()

	sel := NewSelection()
	sel.SelectAll([]int64{4, 7})

	ms := &fakeMutationSource{fail: errors.New("boom")}
	notes := &recordingNotifier{}
	m := NewMutator(ms, c, sel, notes)

	err := m.DeleteMany(context.Background(), sel.IDs())
	require.Error(t, err)
	assert.Equal(t, 2, sel.Count(), "failed bulk delete leaves prior state untouched")
	assert.Equal(t, fetchesBefore, src.callCount(), "no cache invalidation on failure")
	assert.Equal(t, 1, notes.errorCount())
}

func TestSecondBulkDeleteRejectedWhilePending(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})

	block := make(chan struct{})
	ms := &fakeMutationSource{block: block}
	m := NewMutator[item](ms, c, NewSelection(), nil)

	done := make(chan error, 1)
	go func() { done <- m.DeleteMany(context.Background(), []int64{1, 2}) }()
	waitFor(t, func() bool { return len(ms.snapshot()) == 1 })

	err := m.DeleteMany(context.Background(), []int64{3})
	assert.ErrorIs(t, err, ErrMutationPending)

	close(block)
	require.NoError(t, <-done)
}

func TestDeleteOneInvalidatesCache(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	c.Refresh()
	waitFor(t, func() bool { return c.Snapshot().HasData })

	ms := &fakeMutationSource{}
	m := NewMutator[item](ms, c, nil, nil)

	require.NoError(t, m.DeleteOne(context.Background(), 4))
	calls := ms.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "deleteOne", calls[0].op)
	assert.Equal(t, int64(4), calls[0].id)
	waitFor(t, func() bool { return src.callCount() == 2 })
}

func TestCreateOrUpdateDispatchesByIdentity(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	ms := &fakeMutationSource{}
	m := NewMutator[item](ms, c, nil, nil)

	require.NoError(t, m.CreateOrUpdate(context.Background(), testRecord{}))
	require.NoError(t, m.CreateOrUpdate(context.Background(), testRecord{ID: 12}))

	calls := ms.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "create", calls[0].op)
	assert.Equal(t, "update", calls[1].op)
	assert.Equal(t, int64(12), calls[1].id)
}

func TestCreateOrUpdateFailureReturnsError(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	ms := &fakeMutationSource{fail: errors.New("validation: fullName is required")}
	notes := &recordingNotifier{}
	m := NewMutator[item](ms, c, nil, notes)

	err := m.CreateOrUpdate(context.Background(), testRecord{})
	require.Error(t, err, "caller keeps the edit surface open on failure")
	assert.Equal(t, 1, notes.errorCount())
}
