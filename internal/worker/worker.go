package worker

import (
	"log/slog"

	"github.com/cradoe/banking-api/internal/helper"
	"github.com/cradoe/banking-api/internal/smtp"
	"github.com/cradoe/banking-api/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	Mailer      smtp.MailerInterface
	Helper      *helper.HelperRepository
	Logger      *slog.Logger
}

const (
	// accountNotificationGroupID is used for workers that email account holders about lock and KYC events
	accountNotificationGroupID = "account-notification-group"
)

// Our workers typically need access to the event stream and the mailer
// worker-specific dependency can be passed as argument to the worker
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		Mailer:      wk.Mailer,
		Helper:      wk.Helper,
		Logger:      wk.Logger,
	}
}
