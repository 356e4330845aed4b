// Package mailer delivers transactional email through the broker: the
// API publishes email jobs, a worker consumes and sends them over SMTP.
package mailer

// EmailQueue is the broker queue email jobs travel through.
const EmailQueue = "email_jobs"

// EmailJob is the queued unit of delivery. Attempts counts deliveries
// tried so far; the worker republishes failed jobs until the ceiling.
type EmailJob struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Context  map[string]string `json:"context"`
	Attempts int               `json:"attempts"`
}
