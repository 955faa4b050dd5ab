package covidtrack

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string
	Port         int
	EmailAddress string
	Password     string
}

// Alerter emails the operators when a scrape run fails. A failed run
// means no record for the day until someone intervenes, so failures
// must not sit unnoticed in a log file.
type Alerter struct {
	smtp       SmtpConfig
	recipients []string
}

func NewAlerter(smtpConfig SmtpConfig, recipients []string) *Alerter {
	return &Alerter{smtp: smtpConfig, recipients: recipients}
}

func (a *Alerter) ScrapeFailed(ctx context.Context, runID, stage string, cause error) error {
	_, span := tracer.Start(ctx, "ScrapeFailed")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Covidtrack <%s>", a.smtp.EmailAddress)
	mail.To = a.recipients
	mail.Subject = fmt.Sprintf("Scrape run %s failed at stage %q", runID, stage)

	body := fmt.Sprintf(`Scrape run %s aborted at stage %q and no record was written.

%s

The source page layout may have changed. Until this is resolved, today's statistics are missing from the store.`, runID, stage, cause)
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", a.smtp.Server, a.smtp.Port)
	err := mail.Send(addr, smtp.PlainAuth("", a.smtp.EmailAddress, a.smtp.Password, a.smtp.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send alert email")
		return err
	}
	return nil
}
