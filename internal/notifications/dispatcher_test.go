package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"aurasocial/internal/models"
	"aurasocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepo struct {
	repository.NotificationRepository
	created   []*models.Notification
	createErr error
}

func (s *stubNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	n.ID = uint(len(s.created) + 1)
	s.created = append(s.created, n)
	return nil
}

type recordingPublisher struct {
	address  string
	payloads []string
	err      error
}

func (p *recordingPublisher) PublishUser(_ context.Context, address string, payload string) error {
	p.address = address
	p.payloads = append(p.payloads, payload)
	return p.err
}

func TestDispatcher_StoresAndPublishes(t *testing.T) {
	repo := &stubNotificationRepo{}
	pub := &recordingPublisher{}
	d := NewDispatcher(repo, pub)

	outcome := d.Dispatch(context.Background(), LikeEvent("0xA", "0xB", 42))

	assert.Equal(t, OutcomeStored, outcome)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "0xA", repo.created[0].UserAddress)
	assert.Equal(t, "0xB", repo.created[0].FromAddress)
	assert.Equal(t, models.NotificationLike, repo.created[0].Type)

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "0xA", pub.address)

	var msg RealtimeMessage
	require.NoError(t, json.Unmarshal([]byte(pub.payloads[0]), &msg))
	assert.Equal(t, "notification", msg.Type)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, uint(1), msg.Payload.ID)
}

func TestDispatcher_SkipsSelfNotification(t *testing.T) {
	repo := &stubNotificationRepo{}
	d := NewDispatcher(repo, nil)

	assert.Equal(t, OutcomeSkipped, d.Dispatch(context.Background(), FollowEvent("0xA", "0xA")))
	assert.Empty(t, repo.created)
}

func TestDispatcher_SwallowsStoreFailure(t *testing.T) {
	repo := &stubNotificationRepo{createErr: errors.New("database is locked")}
	pub := &recordingPublisher{}
	d := NewDispatcher(repo, pub)

	assert.Equal(t, OutcomeFailed, d.Dispatch(context.Background(), TipEvent("0xA", "0xB", "1")))
	assert.Empty(t, pub.payloads)
}

func TestDispatcher_PublishFailureKeepsStoredRow(t *testing.T) {
	repo := &stubNotificationRepo{}
	pub := &recordingPublisher{err: errors.New("redis down")}
	d := NewDispatcher(repo, pub)

	assert.Equal(t, OutcomeStored, d.Dispatch(context.Background(), ShareEvent("0xA", "0xB", 1)))
	assert.Len(t, repo.created, 1)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.Equal(t, OutcomeSkipped, d.Dispatch(context.Background(), LikeEvent("0xA", "0xB", 1)))
}
