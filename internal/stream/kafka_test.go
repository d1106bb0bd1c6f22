package stream

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestNewEventMessage(t *testing.T) {
	event := &models.AccountEvent{
		Type:       models.AccountEventKYCDecided,
		AccountID:  42,
		Email:      "asha@example.com",
		Name:       "Asha Kumar",
		KYCStatus:  models.KYCStatusApproved,
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	msg, err := NewEventMessage(AccountEventsTopic, event)
	require.NoError(t, err)

	require.Equal(t, AccountEventsTopic, *msg.TopicPartition.Topic)
	require.Equal(t, []byte("42"), msg.Key)
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, models.AccountEventKYCDecided, string(msg.Headers[0].Value))

	var decoded models.AccountEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, *event, decoded)
}
