package worker

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/stream"
)

// NotificationWorker emails account holders when their account is locked or their
// KYC submission is decided. It returns when ctx is cancelled.
func (wk *Worker) NotificationWorker(ctx context.Context) error {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: accountNotificationGroupID,
		Topic:   stream.AccountEventsTopic,
	})
	if err != nil {
		return err
	}
	defer consumer.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			if err := wk.handleAccountEvent(e.Value); err != nil {
				wk.Logger.Error("failed to handle account event", "partition", e.TopicPartition.String(), "error", err)
			}
		case kafka.Error:
			wk.Logger.Error("kafka consumer error", "error", e)
		default:
			// Handle other events if needed
		}
	}
}

func (wk *Worker) handleAccountEvent(value []byte) error {
	var event models.AccountEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	data := wk.Helper.NewEmailData()
	data["Name"] = event.Name

	switch event.Type {
	case models.AccountEventLocked:
		return wk.Mailer.Send(event.Email, data, "account-locked.tmpl")
	case models.AccountEventKYCDecided:
		data["Decision"] = event.KYCStatus
		return wk.Mailer.Send(event.Email, data, "kyc-decision.tmpl")
	default:
		return nil
	}
}
