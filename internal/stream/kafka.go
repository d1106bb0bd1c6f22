package stream

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/banking-api/internal/models"
)

// AccountEventsTopic carries lock and KYC events keyed by account id.
const AccountEventsTopic = "account.events"

const deliveryTimeout = 10 * time.Second

type KafkaStream struct {
	kafkaServers string
	producer     *kafka.Producer
}

func New(kafkaServers string) (*KafkaStream, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  kafkaServers,
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, err
	}

	return &KafkaStream{
		kafkaServers: kafkaServers,
		producer:     producer,
	}, nil
}

// ProduceMessage writes one message and waits for the broker to acknowledge it.
func (st *KafkaStream) ProduceMessage(ctx context.Context, msg *kafka.Message) error {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	delivery := make(chan kafka.Event, 1)

	if err := st.producer.Produce(msg, delivery); err != nil {
		return err
	}

	select {
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return nil
		}
		return m.TopicPartition.Error
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (st *KafkaStream) Publish(ctx context.Context, event *models.AccountEvent) error {
	msg, err := NewEventMessage(AccountEventsTopic, event)
	if err != nil {
		return err
	}

	return st.ProduceMessage(ctx, msg)
}

// NewEventMessage encodes event as JSON, keyed by account id so one account's events stay ordered.
func NewEventMessage(topic string, event *models.AccountEvent) (*kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.FormatInt(event.AccountID, 10)),
		Value:          value,
		Headers:        []kafka.Header{{Key: "event_type", Value: []byte(event.Type)}},
	}, nil
}

type StreamConsumer struct {
	GroupId string
	Topic   string
}

func (st *KafkaStream) CreateConsumer(consumerStruct *StreamConsumer) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": st.kafkaServers,
		"group.id":          consumerStruct.GroupId,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(consumerStruct.Topic, nil); err != nil {
		consumer.Close()
		return nil, err
	}

	return consumer, nil
}

// Close flushes outstanding messages before closing the producer.
func (st *KafkaStream) Close() {
	st.producer.Flush(int(deliveryTimeout / time.Millisecond))
	st.producer.Close()
}
