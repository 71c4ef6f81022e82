package cron

import (
	"context"
	"errors"
	"testing"

	"marketplace/models"
	"marketplace/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubVerifier struct {
	got []string
	err error
}

func (s *stubVerifier) RecomputeVerification(ctx context.Context, professionalID string) (string, error) {
	s.got = append(s.got, professionalID)
	return models.VerificationVerified, s.err
}

func TestVerificationDecidedHandler(t *testing.T) {
	v := &stubVerifier{}
	mux := NewMux(v, zap.NewNop())

	task, _, err := tasks.NewVerificationDecidedTask(models.VerificationDecidedPayload{DocumentID: "d1", ProfessionalID: "p1"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"p1"}, v.got)

	v.err = errors.New("mongo down")
	assert.Error(t, mux.ProcessTask(context.Background(), task), "a failed recompute is retried")
}

func TestVerificationDecidedHandlerSkipsBadPayload(t *testing.T) {
	v := &stubVerifier{}
	mux := NewMux(v, zap.NewNop())

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeVerificationDecided, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	err = mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeVerificationDecided, []byte(`{"documentId":"d1"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, v.got)
}

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubFlusher struct{ calls int }

func (s *stubFlusher) Flush(ctx context.Context) error {
	s.calls++
	return nil
}

func TestRefreshTaxonomy(t *testing.T) {
	store, cache := &stubRefresher{}, &stubFlusher{}
	require.NoError(t, RefreshTaxonomy(context.Background(), store, cache, zap.NewNop()))
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, cache.calls)

	store.err = errors.New("boom")
	assert.Error(t, RefreshTaxonomy(context.Background(), store, nil, zap.NewNop()))
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	_, err := StartScheduler("every now and then", &stubRefresher{}, nil, zap.NewNop())
	assert.Error(t, err)

	c, err := StartScheduler("@every 1h", &stubRefresher{}, nil, zap.NewNop())
	require.NoError(t, err)
	<-c.Stop().Done()
}
