package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender delivers a rendered email through the email provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues templated emails for the background worker.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
	QueueMonthlySummaryEmail(ctx context.Context, input QueueMonthlySummaryInput) error
}

// QueuePasswordResetInput represents the input for queueing a password reset email.
type QueuePasswordResetInput struct {
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// SummaryCategoryLine is one category row of the monthly summary email.
type SummaryCategoryLine struct {
	Category string
	Amount   string
	Percent  string
}

// QueueMonthlySummaryInput represents the input for queueing a monthly summary email.
type QueueMonthlySummaryInput struct {
	UserEmail      string
	UserName       string
	PeriodLabel    string
	Currency       string
	Income         string
	VariableTotal  string
	FixedTotal     string
	CombinedTotal  string
	Savings        string
	SavingsPercent string
	Overspent      bool
	Categories     []SummaryCategoryLine
}
