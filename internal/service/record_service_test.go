package service_test

import (
	"client-records-service/internal/entity"
	"client-records-service/internal/service"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub implementation of the RecordStore interface
type stubStore struct {
	records map[int]*entity.ClientRecord
	nextID  int
	deleted []int
}

func newStubStore() *stubStore {
	return &stubStore{records: map[int]*entity.ClientRecord{}, nextID: 1}
}

func (s *stubStore) ListRecords(ctx context.Context) ([]*entity.ClientRecord, error) {
	var records []*entity.ClientRecord
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}

func (s *stubStore) GetRecordByID(ctx context.Context, id int) (*entity.ClientRecord, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return record, nil
}

func (s *stubStore) CreateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error) {
	record.ID = s.nextID
	s.nextID++
	s.records[record.ID] = record
	return record, nil
}

func (s *stubStore) UpdateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error) {
	s.records[record.ID] = record
	return record, nil
}

func (s *stubStore) DeleteRecord(ctx context.Context, id int) error {
	delete(s.records, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(t *testing.T, store *stubStore) *service.RecordService {
	t.Setenv("ENV", "test")
	return service.NewRecordService(store, nil, nil)
}

func TestCreateRecord_AssignsID(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	record := &entity.ClientRecord{
		Username:         "acme",
		PaymentStatus:    "pending",
		CommissionStatus: "open",
		Deadline:         "2026-10-15",
	}
	created, err := svc.CreateRecord(context.Background(), record, "key-1")
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, created, store.records[1])
}

func TestGetRecordByID(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.CreateRecord(context.Background(), &entity.ClientRecord{Username: "acme"}, "")
	require.NoError(t, err)

	got, err := svc.GetRecordByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Username)
}

func TestGetRecordByID_Missing(t *testing.T) {
	svc := newTestService(t, newStubStore())

	_, err := svc.GetRecordByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateRecord_OverwritesEveryField(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.CreateRecord(context.Background(), &entity.ClientRecord{
		Username:         "acme",
		PaymentStatus:    "pending",
		CommissionStatus: "open",
		Deadline:         "2026-10-15",
	}, "")
	require.NoError(t, err)

	// A PUT carries the full row; fields left empty by the caller are written as empty.
	updated, err := svc.UpdateRecord(context.Background(), &entity.ClientRecord{
		ID:       created.ID,
		Username: "acme-renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-renamed", updated.Username)
	assert.Empty(t, store.records[created.ID].PaymentStatus)
	assert.Empty(t, store.records[created.ID].Deadline)
}

func TestDeleteRecord(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.CreateRecord(context.Background(), &entity.ClientRecord{Username: "acme"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(context.Background(), created.ID))
	assert.Equal(t, []int{created.ID}, store.deleted)

	_, err = svc.GetRecordByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRecords(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	for _, name := range []string{"acme", "globex"} {
		_, err := svc.CreateRecord(context.Background(), &entity.ClientRecord{Username: name}, "")
		require.NoError(t, err)
	}

	records, err := svc.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
