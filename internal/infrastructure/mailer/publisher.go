package mailer

import (
	"context"
	"encoding/json"
	"fmt"
)

type queuePublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// Publisher enqueues email jobs on the broker.
type Publisher struct {
	queue queuePublisher
}

func NewPublisher(queue queuePublisher) *Publisher {
	return &Publisher{queue: queue}
}

func (p *Publisher) Enqueue(ctx context.Context, job EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}
	if err := p.queue.Publish(ctx, EmailQueue, body); err != nil {
		return fmt.Errorf("publish email job: %w", err)
	}
	return nil
}

// SendVerification queues the signup verification email.
func (p *Publisher) SendVerification(ctx context.Context, to, username, link string) error {
	return p.Enqueue(ctx, EmailJob{
		To:       to,
		Subject:  "Email verification",
		Template: TemplateVerification,
		Context: map[string]string{
			"username": username,
			"link":     link,
		},
	})
}
