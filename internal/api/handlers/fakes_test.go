package handlers_test

import (
	"context"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return s.vector, s.err
}

type stubIndex struct {
	matches []*entities.Provider
	err     error
}

func (s *stubIndex) InitSchema(context.Context) error { return nil }
func (s *stubIndex) Reset(context.Context) error      { return nil }
func (s *stubIndex) UpsertBatch(context.Context, []repositories.IndexedProvider) error {
	return nil
}

func (s *stubIndex) Query(context.Context, []float32, entities.SearchFilters, int) ([]*entities.Provider, error) {
	return s.matches, s.err
}

type stubUserRepo struct {
	user *entities.User
	err  error
}

func (s *stubUserRepo) FindByNameAndDOB(context.Context, string, string, time.Time) (*entities.User, error) {
	return s.user, s.err
}

type stubSender struct {
	err  error
	sent []string
}

func (s *stubSender) SendAppointmentConfirmation(_ context.Context, to string, _ providers.AppointmentConfirmation) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}
