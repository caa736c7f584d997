package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

var _ ordering.ProvisioningNotifier = (*ProvisioningNotifier)(nil)

// ModulesGrantedEvent evento publicado cuando una empresa obtiene módulos
// nuevos. Lo consume el servicio de aprovisionamiento para crear esquemas,
// correr migraciones y habilitar features.
type ModulesGrantedEvent struct {
	CompanyID   string    `json:"company_id"`
	ModuleTypes []string  `json:"module_types"`
	Timestamp   time.Time `json:"timestamp"`
}

// ProvisioningNotifier publica eventos de aprovisionamiento en Kafka.
type ProvisioningNotifier struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProvisioningNotifier construye el notificador sobre un SyncProducer ya conectado.
func NewProvisioningNotifier(producer sarama.SyncProducer, topic string, log *logger.Logger) *ProvisioningNotifier {
	return &ProvisioningNotifier{producer: producer, topic: topic, log: log}
}

// NewSyncProducer crea un productor síncrono con acks de todas las réplicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}
	return producer, nil
}

// NotifyModulesGranted publica el evento con key = companyID para que todos
// los eventos de una empresa caigan en la misma partición (orden garantizado).
func (n *ProvisioningNotifier) NotifyModulesGranted(ctx context.Context, companyID string, moduleTypes []string) error {
	event := ModulesGrantedEvent{
		CompanyID:   companyID,
		ModuleTypes: moduleTypes,
		Timestamp:   time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal modules granted event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(companyID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("modules_granted")},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := n.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("publish modules granted event: %w", err)
	}

	n.log.Info().
		Str("topic", n.topic).
		Str("company_id", companyID).
		Strs("module_types", moduleTypes).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento de aprovisionamiento publicado")

	return nil
}

// Close cierra el productor.
func (n *ProvisioningNotifier) Close() error {
	return n.producer.Close()
}
