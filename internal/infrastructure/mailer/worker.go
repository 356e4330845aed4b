package mailer

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const maxDeliveryAttempts = 10

type queueConsumer interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	Consume(queueName string) (<-chan amqp.Delivery, error)
}

// Worker drains the email queue and sends each job over the configured
// sender. Failed jobs are republished with an incremented attempt count
// until the ceiling, then dropped with an error log.
type Worker struct {
	queue  queueConsumer
	sender Sender
	logger *log.Logger
}

func NewWorker(queue queueConsumer, sender Sender, logger *log.Logger) *Worker {
	return &Worker{queue: queue, sender: sender, logger: logger}
}

func (w *Worker) Start(ctx context.Context) error {
	deliveries, err := w.queue.Consume(EmailQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(ctx, d)
			}
		}
	}()

	return nil
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var job EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.logger.Error("dropping undecodable email job", "err", err)
		_ = d.Ack(false)
		return
	}

	if err := w.process(ctx, job); err != nil {
		w.retry(ctx, job, err)
	}
	// Always ack: retries travel as fresh messages, so the original
	// delivery is finished either way.
	_ = d.Ack(false)
}

func (w *Worker) process(ctx context.Context, job EmailJob) error {
	html, err := Render(job.Template, job.Context)
	if err != nil {
		return err
	}
	return w.sender.Send(ctx, Message{
		To:      job.To,
		Subject: job.Subject,
		HTML:    html,
	})
}

func (w *Worker) retry(ctx context.Context, job EmailJob, cause error) {
	job.Attempts++
	if job.Attempts >= maxDeliveryAttempts {
		w.logger.Error("email delivery failed permanently",
			"to", job.To, "subject", job.Subject, "attempts", job.Attempts, "err", cause)
		return
	}

	body, err := json.Marshal(job)
	if err != nil {
		w.logger.Error("marshal email retry", "err", err)
		return
	}
	if err := w.queue.Publish(ctx, EmailQueue, body); err != nil {
		w.logger.Error("requeue email job", "to", job.To, "err", err)
		return
	}
	w.logger.Warn("email delivery failed, requeued",
		"to", job.To, "attempt", job.Attempts, "err", cause)
}
