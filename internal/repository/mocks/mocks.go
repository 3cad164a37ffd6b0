// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/seldt/wellspring/internal/store"
)

// RecordStore is a mock for repository.RecordStore.
type RecordStore struct {
	mock.Mock
}

func (m *RecordStore) Create(ctx context.Context, owner string, rec *store.Record) error {
	args := m.Called(ctx, owner, rec)
	return args.Error(0)
}

func (m *RecordStore) Get(ctx context.Context, owner, id string) (*store.Record, error) {
	args := m.Called(ctx, owner, id)
	if rec, ok := args.Get(0).(*store.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore) Update(ctx context.Context, owner string, rec *store.Record) error {
	args := m.Called(ctx, owner, rec)
	return args.Error(0)
}

func (m *RecordStore) Delete(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *RecordStore) List(ctx context.Context, owner string) ([]store.Record, error) {
	args := m.Called(ctx, owner)
	if list, ok := args.Get(0).([]store.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore) SetHashID(ctx context.Context, owner, id string, hashID int64) error {
	args := m.Called(ctx, owner, id, hashID)
	return args.Error(0)
}
