package config

import (
	"github.com/segmentio/kafka-go"
	"os"
	"strings"
)

func getKafkaBrokerURLs() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092" // Default broker
	}
	return strings.Split(brokers, ",")
}

// NewKafkaWriter builds the writer used for record lifecycle events.
func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(getKafkaBrokerURLs()...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
