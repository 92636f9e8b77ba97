package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	texts  []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeIndex struct {
	matches  []*entities.Provider
	queryErr error

	gotVector  []float32
	gotFilters entities.SearchFilters
	gotLimit   int

	batches   [][]repositories.IndexedProvider
	upsertErr error
}

func (f *fakeIndex) InitSchema(context.Context) error { return nil }
func (f *fakeIndex) Reset(context.Context) error      { return nil }

func (f *fakeIndex) UpsertBatch(_ context.Context, batch []repositories.IndexedProvider) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := make([]repositories.IndexedProvider, len(batch))
	copy(copied, batch)
	f.batches = append(f.batches, copied)
	return nil
}

func (f *fakeIndex) Query(_ context.Context, vector []float32, filters entities.SearchFilters, limit int) ([]*entities.Provider, error) {
	f.gotVector = vector
	f.gotFilters = filters
	f.gotLimit = limit
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

type fakeBus struct {
	mu         sync.Mutex
	published  []*entities.SearchResultsEvent
	publishErr error
}

func (f *fakeBus) Publish(_ context.Context, _ string, event *entities.SearchResultsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(context.Context, string) (<-chan *entities.SearchResultsEvent, error) {
	return nil, nil
}

func (f *fakeBus) Close() error { return nil }

type fakeUserRepo struct {
	user *entities.User
	err  error

	gotFirst string
	gotLast  string
	gotDOB   time.Time
}

func (f *fakeUserRepo) FindByNameAndDOB(_ context.Context, firstName, lastName string, dateOfBirth time.Time) (*entities.User, error) {
	f.gotFirst = firstName
	f.gotLast = lastName
	f.gotDOB = dateOfBirth
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeSender struct {
	mu            sync.Mutex
	err           error
	recipients    []string
	confirmations []providers.AppointmentConfirmation
}

func (f *fakeSender) SendAppointmentConfirmation(_ context.Context, to string, c providers.AppointmentConfirmation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.recipients = append(f.recipients, to)
	f.confirmations = append(f.confirmations, c)
	return nil
}
