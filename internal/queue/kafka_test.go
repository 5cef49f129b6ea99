package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"scamguard/internal/domain"
)

func TestKafka_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var msg domain.Message
		if err := json.Unmarshal(val, &msg); err != nil {
			return err
		}
		if msg.Content != "your otp is 1234" {
			return errors.New("unexpected content " + msg.Content)
		}
		return nil
	})

	k := newKafka(producer, "scamguard.messages")
	if err := k.Publish(context.Background(), domain.Message{ID: "abc", Content: "your otp is 1234"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKafka_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := newKafka(producer, "scamguard.messages")
	err := k.Publish(context.Background(), domain.Message{ID: "abc"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Errorf("error = %v, want ErrOutOfBrokers", err)
	}
	k.Close()
}

func TestKafkaConsumer_Process(t *testing.T) {
	var got []domain.Message
	c := &KafkaConsumer{handler: func(msg domain.Message) error {
		if msg.Content == "fail" {
			return errors.New("handler failed")
		}
		got = append(got, msg)
		return nil
	}}

	ok, _ := json.Marshal(domain.Message{ID: "1", Content: "hello"})
	bad, _ := json.Marshal(domain.Message{ID: "2", Content: "fail"})

	tests := []struct {
		name  string
		value []byte
		mark  bool
	}{
		{"accepted", ok, true},
		{"handler error", bad, false},
		{"undecodable", []byte("{not json"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mark := c.process(&sarama.ConsumerMessage{Value: tt.value}); mark != tt.mark {
				t.Errorf("mark = %v, want %v", mark, tt.mark)
			}
		})
	}

	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("handled = %+v", got)
	}
}
