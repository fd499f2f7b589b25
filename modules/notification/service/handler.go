package service

import (
	"context"
	"encoding/json"
	"fmt"

	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/mail"
	"spendenlauf-api/core/tasks"

	"github.com/hibiken/asynq"
)

// SendConfirmation renders and sends one confirmation email.
func SendConfirmation(mailer mail.Mailer, p tasks.ConfirmationEmailPayload) error {
	var subject, template string
	switch p.Kind {
	case tasks.KindTeam:
		subject = "Deine Team-Anmeldung zum Spendenlauf"
		template = "confirmation_team.html"
	case tasks.KindChildren:
		subject = "Anmeldung zum Kinderlauf"
		template = "confirmation_children.html"
	default:
		subject = "Deine Anmeldung zum Spendenlauf"
		template = "confirmation_individual.html"
	}

	return mailer.Send(p.Recipient, subject, template, p)
}

// NewConfirmationEmailHandler returns the asynq handler draining the mail
// queue. The task carries MaxRetry 0, so a failure here is logged and done.
func NewConfirmationEmailHandler(mailer mail.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p tasks.ConfirmationEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("confirmation email: unmarshaling payload: %w", err)
		}

		if err := SendConfirmation(mailer, p); err != nil {
			logger.Error("Notification:ConfirmationEmail:SendFailed",
				"recipient", p.Recipient,
				"error", err,
			)
			return err
		}

		logger.Info("Notification:ConfirmationEmail:Sent", "recipient", p.Recipient, "kind", p.Kind)
		return nil
	}
}
