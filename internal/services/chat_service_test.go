package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type chatFixture struct {
	svc      *ChatService
	jobs     *fakeJobRepo
	apps     *fakeApplicationRepo
	messages *fakeChatMessageRepo
	bcast    *fakeBroadcaster

	job      *models.Job
	owner    string
	accepted string
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)
	messages := newFakeChatMessageRepo()
	bcast := &fakeBroadcaster{}

	job := jobs.put(&models.Job{CreatedBy: "owner-1", Status: models.JobStatusInProgress})
	apps.put(&models.JobApplication{
		JobID:       job.ID,
		ApplicantID: "picker-1",
		Status:      models.ApplicationStatusAccepted,
	})

	return &chatFixture{
		svc:      NewChatService(messages, jobs, apps, bcast),
		jobs:     jobs,
		apps:     apps,
		messages: messages,
		bcast:    bcast,
		job:      job,
		owner:    "owner-1",
		accepted: "picker-1",
	}
}

func TestAuthorizeOwnerWithAcceptedApplicant(t *testing.T) {
	f := newChatFixture(t)

	// Обе стороны симметричны
	job, err := f.svc.Authorize(context.Background(), f.job.ID, f.owner, f.accepted)
	require.NoError(t, err)
	assert.Equal(t, f.job.ID, job.ID)

	_, err = f.svc.Authorize(context.Background(), f.job.ID, f.accepted, f.owner)
	require.NoError(t, err)
}

func TestAuthorizeRejectsNonOwnerPairs(t *testing.T) {
	f := newChatFixture(t)
	f.apps.put(&models.JobApplication{
		JobID:       f.job.ID,
		ApplicantID: "picker-2",
		Status:      models.ApplicationStatusAccepted,
	})

	// Ни один из двоих не владелец, хотя оба ACCEPTED
	_, err := f.svc.Authorize(context.Background(), f.job.ID, f.accepted, "picker-2")
	require.ErrorIs(t, err, apperrors.ErrChatOnlyWithOwner)

	// Владелец сам с собой
	_, err = f.svc.Authorize(context.Background(), f.job.ID, f.owner, f.owner)
	require.ErrorIs(t, err, apperrors.ErrChatOnlyWithOwner)
}

func TestAuthorizeRejectsNonAcceptedApplicant(t *testing.T) {
	f := newChatFixture(t)
	f.apps.put(&models.JobApplication{
		JobID:       f.job.ID,
		ApplicantID: "picker-pending",
		Status:      models.ApplicationStatusPending,
	})
	f.apps.put(&models.JobApplication{
		JobID:       f.job.ID,
		ApplicantID: "picker-rejected",
		Status:      models.ApplicationStatusRejected,
	})

	for _, other := range []string{"picker-pending", "picker-rejected", "stranger"} {
		_, err := f.svc.Authorize(context.Background(), f.job.ID, f.owner, other)
		require.ErrorIs(t, err, apperrors.ErrChatOnlyWithAccepted, "other %s", other)
	}
}

func TestAuthorizeMissingJob(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.Authorize(context.Background(), "no-such-job", f.owner, f.accepted)
	require.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSendMessagePersistsAndBroadcasts(t *testing.T) {
	f := newChatFixture(t)

	resp, err := f.svc.SendMessage(context.Background(), f.owner, &dto.SendMessageRequest{
		JobID:      f.job.ID,
		ReceiverID: f.accepted,
		Message:    "hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "hello", resp.Message)
	assert.Equal(t, f.owner, resp.SenderID)

	events := f.bcast.all()
	require.Len(t, events, 1)
	assert.Equal(t, f.job.ID, events[0].JobID)
	assert.Equal(t, resp, events[0].Payload)
	assert.Equal(t, 1, f.messages.count())
}

func TestSendMessageDeniedNothingPersisted(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.SendMessage(context.Background(), f.owner, &dto.SendMessageRequest{
		JobID:      f.job.ID,
		ReceiverID: "stranger",
		Message:    "hello",
	})
	require.ErrorIs(t, err, apperrors.ErrChatOnlyWithAccepted)

	assert.Equal(t, 0, f.messages.count())
	assert.Empty(t, f.bcast.all())
}

func TestSendMessagePersistFailureNotBroadcast(t *testing.T) {
	f := newChatFixture(t)
	f.messages.createErr = errStoreDown

	_, err := f.svc.SendMessage(context.Background(), f.owner, &dto.SendMessageRequest{
		JobID:      f.job.ID,
		ReceiverID: f.accepted,
		Message:    "hello",
	})
	require.Error(t, err)
	assert.Empty(t, f.bcast.all())
}

func TestConcurrentSendsAllDelivered(t *testing.T) {
	f := newChatFixture(t)

	const senders = 20
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SendMessage(context.Background(), f.owner, &dto.SendMessageRequest{
				JobID:      f.job.ID,
				ReceiverID: f.accepted,
				Message:    "ping",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Каждое сохраненное сообщение разослано ровно один раз
	assert.Equal(t, senders, f.messages.count())
	assert.Len(t, f.bcast.all(), senders)
}

func TestGetJobMessagesOwnerSeesAllThreads(t *testing.T) {
	f := newChatFixture(t)
	f.apps.put(&models.JobApplication{
		JobID:       f.job.ID,
		ApplicantID: "picker-2",
		Status:      models.ApplicationStatusAccepted,
	})

	ctx := context.Background()
	send := func(sender, receiver, text string) {
		_, err := f.svc.SendMessage(ctx, sender, &dto.SendMessageRequest{
			JobID:      f.job.ID,
			ReceiverID: receiver,
			Message:    text,
		})
		require.NoError(t, err)
	}
	send(f.owner, f.accepted, "m1")
	send(f.accepted, f.owner, "m2")
	send(f.owner, "picker-2", "m3")

	history, err := f.svc.GetJobMessages(ctx, f.job.ID, f.owner)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Порядок: по возрастанию created_at
	assert.Equal(t, "m1", history[0].Message)
	assert.Equal(t, "m2", history[1].Message)
	assert.Equal(t, "m3", history[2].Message)
}

func TestGetJobMessagesApplicantSeesOwnThreadOnly(t *testing.T) {
	f := newChatFixture(t)
	f.apps.put(&models.JobApplication{
		JobID:       f.job.ID,
		ApplicantID: "picker-2",
		Status:      models.ApplicationStatusAccepted,
	})

	ctx := context.Background()
	_, err := f.svc.SendMessage(ctx, f.owner, &dto.SendMessageRequest{JobID: f.job.ID, ReceiverID: f.accepted, Message: "for picker-1"})
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.owner, &dto.SendMessageRequest{JobID: f.job.ID, ReceiverID: "picker-2", Message: "for picker-2"})
	require.NoError(t, err)

	history, err := f.svc.GetJobMessages(ctx, f.job.ID, f.accepted)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "for picker-1", history[0].Message)
}

func TestGetJobMessagesStrangerForbidden(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.GetJobMessages(context.Background(), f.job.ID, "stranger")
	require.ErrorIs(t, err, apperrors.ErrChatNotAuthorized)
}

func TestGetJobMessagesMissingJob(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.GetJobMessages(context.Background(), "no-such-job", f.owner)
	require.ErrorIs(t, err, apperrors.ErrJobNotFound)
}
