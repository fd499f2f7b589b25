package notification

import (
	"spendenlauf-api/core/mail"
	"spendenlauf-api/core/tasks"
	"spendenlauf-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Init wires the confirmation-email dispatcher. client is nil when Redis is
// disabled; the dispatcher then sends inline through the mailer. mux is the
// asynq worker's route table and is likewise nil without Redis.
func Init(client *asynq.Client, mailer mail.Mailer, mux *asynq.ServeMux) *service.NotificationService {
	if mux != nil {
		mux.HandleFunc(tasks.TypeConfirmationEmail, service.NewConfirmationEmailHandler(mailer))
	}
	return service.NewNotificationService(client, mailer)
}
