package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Kardex-api/internal/application/event"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

var _ event.Publisher = (*Publisher)(nil)

// Publisher publica eventos de dominio en un tópico Kafka. Se invoca siempre
// después del Commit: un fallo de publicación se loguea pero nunca afecta la
// operación ya confirmada en BD.
type Publisher struct {
	writer *kafkago.Writer
	log    *logger.Logger
}

// NewPublisher construye el productor sobre los brokers dados.
func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &Publisher{writer: writer, log: log}
}

// Publish serializa el payload a JSON y lo escribe con el tipo de evento como
// header y la key dada (ID del agregado) como clave de partición.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}
	msg := kafkago.Message{
		Key:   []byte(key),
		Value: body,
		Time:  time.Now(),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Str("event_type", eventType).Str("key", key).Msg("publicar evento falló")
		return fmt.Errorf("write message: %w", err)
	}
	p.log.Debug().Str("event_type", eventType).Str("key", key).Msg("evento publicado")
	return nil
}

// Close cierra el writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
