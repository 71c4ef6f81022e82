package tasks

import (
	"encoding/json"
	"time"

	"marketplace/models"

	"github.com/hibiken/asynq"
)

const TypeVerificationDecided = "verification:decided"

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewVerificationDecidedTask builds the task the worker uses to recompute a
// professional's verification status after an admin decision.
func NewVerificationDecidedTask(payload models.VerificationDecidedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeVerificationDecided, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

// ParseVerificationDecided decodes the task payload.
func ParseVerificationDecided(t *asynq.Task) (models.VerificationDecidedPayload, error) {
	var p models.VerificationDecidedPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
