package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"asistencia/internal/attendance"
)

// Topic carries one JSON message per rejected attempt, keyed by employee
// so per-employee ordering holds across partitions.
const Topic = "asistencia.intentos-fallidos"

type attemptMessage struct {
	Employee  string  `json:"empleado"`
	Reason    string  `json:"motivo"`
	Timestamp int64   `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Device    string  `json:"dispositivo"`
}

// KafkaPublisher produces alerts to a Kafka (or Redpanda) cluster.
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafkaPublisher connects to the brokers and ensures the alert topic
// exists. Topic creation is idempotent; an already-exists answer is fine.
func NewKafkaPublisher(ctx context.Context, brokers []string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 1, 1, nil, Topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("create topic: %w", resp.Err)
	}
	return &KafkaPublisher{client: client}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, attempt attendance.FailedAttempt) error {
	payload, err := json.Marshal(attemptMessage{
		Employee:  attempt.EmployeeName,
		Reason:    attempt.Reason,
		Timestamp: attempt.Timestamp,
		Lat:       attempt.Lat,
		Lon:       attempt.Lon,
		Device:    attempt.Device,
	})
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	record := &kgo.Record{Key: []byte(attempt.EmployeeName), Value: payload}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce alert: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
