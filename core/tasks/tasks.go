// Package tasks holds the asynq task definitions and queue wiring. The mail
// queue is fire-and-forget: confirmation emails are never retried and their
// failure never reaches the registrant.
package tasks

import (
	"encoding/json"
	"fmt"

	"spendenlauf-api/core/config"
	"spendenlauf-api/core/constants"

	"github.com/hibiken/asynq"
)

const (
	TypeConfirmationEmail = "email:send_confirmation"
)

// RegistrationKind mirrors the three signup forms.
type RegistrationKind string

const (
	KindIndividual RegistrationKind = "individual"
	KindTeam       RegistrationKind = "team"
	KindChildren   RegistrationKind = "children"
)

// ConfirmationEmailPayload carries everything the mail template needs.
// StartTime is the resolved timeslot's time of day; TeamName and TeamCode are
// set for team confirmations only.
type ConfirmationEmailPayload struct {
	Recipient string           `json:"recipient"`
	FirstName string           `json:"first_name"`
	Kind      RegistrationKind `json:"kind"`
	StartTime string           `json:"start_time,omitempty"`
	TeamName  string           `json:"team_name,omitempty"`
	TeamCode  string           `json:"team_code,omitempty"`
}

// NewConfirmationEmailTask builds the asynq task. MaxRetry is zero: a failed
// confirmation is logged and dropped, never replayed.
func NewConfirmationEmailTask(payload ConfirmationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tasks: marshaling confirmation payload: %w", err)
	}
	return asynq.NewTask(TypeConfirmationEmail, data,
		asynq.Queue(constants.QueueMail),
		asynq.MaxRetry(0),
	), nil
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient returns an asynq producer client.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer returns the worker that drains the mail queue.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.QueueMail: 1,
		},
	})
}
