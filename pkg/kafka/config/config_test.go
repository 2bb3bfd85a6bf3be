package kafkaconfig

import (
	"strings"
	"testing"
)

func TestLoad_DisabledByDefault(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Enabled() {
		t.Errorf("expected Kafka to be disabled without brokers, got %v", cfg.Brokers)
	}
	if cfg.Topic != DefaultTopic {
		t.Errorf("expected topic %s, got %s", DefaultTopic, cfg.Topic)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Enabled() {
		t.Fatal("expected Kafka to be enabled")
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "kafka-1:9092" || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Brokers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"broker without port", map[string]string{EnvKafkaBrokers: "kafka"}, "must be host:port"},
		{"bad compression", map[string]string{EnvKafkaProducerCompression: "brotli"}, "ProducerCompression"},
		{"bad acks", map[string]string{EnvKafkaProducerRequireAcks: "2"}, "ProducerRequireAcks"},
		{"dlq equals topic", map[string]string{EnvKafkaTopic: "t", EnvKafkaDLQTopic: "t"}, "DLQTopic"},
		{"bad offset", map[string]string{EnvKafkaConsumerStartOffset: "7"}, "ConsumerStartOffset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
