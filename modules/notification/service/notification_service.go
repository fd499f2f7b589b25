package service

import (
	"sync"

	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/mail"
	"spendenlauf-api/core/tasks"

	"github.com/hibiken/asynq"
)

// Dispatcher fans out confirmation emails after a successful registration.
// Outcomes are awaited only to be logged; they never influence what the
// registrant sees.
type Dispatcher interface {
	DispatchConfirmations(payloads []tasks.ConfirmationEmailPayload)
}

// NotificationService enqueues confirmations onto the asynq mail queue. When
// no queue client is configured (Redis disabled) it falls back to sending
// directly through the mailer.
type NotificationService struct {
	client *asynq.Client
	mailer mail.Mailer
}

func NewNotificationService(client *asynq.Client, mailer mail.Mailer) *NotificationService {
	return &NotificationService{client: client, mailer: mailer}
}

// DispatchConfirmations issues all sends concurrently and waits for the
// batch, logging failures and nothing else.
func (s *NotificationService) DispatchConfirmations(payloads []tasks.ConfirmationEmailPayload) {
	var wg sync.WaitGroup
	for _, payload := range payloads {
		wg.Add(1)
		go func(p tasks.ConfirmationEmailPayload) {
			defer wg.Done()
			if err := s.dispatch(p); err != nil {
				logger.Error("NotificationService:DispatchConfirmations",
					"recipient", p.Recipient,
					"kind", p.Kind,
					"error", err,
				)
			}
		}(payload)
	}
	wg.Wait()
}

func (s *NotificationService) dispatch(p tasks.ConfirmationEmailPayload) error {
	if s.client == nil {
		return SendConfirmation(s.mailer, p)
	}

	task, err := tasks.NewConfirmationEmailTask(p)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task)
	return err
}
