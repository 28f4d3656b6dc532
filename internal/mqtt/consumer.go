package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"aquasolar-cloud/internal/domain"
)

// Ingestor is the pipeline entry the bridge feeds.
type Ingestor interface {
	Ingest(ctx context.Context, push *domain.TelemetryPush) error
}

// Consumer bridges telemetry pushes arriving over MQTT into the same
// pipeline the HTTP endpoint feeds. The bridge is ingest only: there is no
// response channel here, so pending commands stay queued until the unit
// polls or pushes over HTTP.
type Consumer struct {
	client   *Client
	topic    string
	ingestor Ingestor
	logger   *zap.Logger
}

func NewConsumer(client *Client, topic string, ingestor Ingestor, logger *zap.Logger) *Consumer {
	return &Consumer{
		client:   client,
		topic:    topic,
		ingestor: ingestor,
		logger:   logger,
	}
}

// Start subscribes and blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	if c.topic == "" {
		return fmt.Errorf("telemetry MQTT topic not configured")
	}

	if err := c.client.Subscribe(c.topic, 1, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to telemetry topic: %w", err)
	}

	c.logger.Info("MQTT telemetry consumer started", zap.String("topic", c.topic))

	<-ctx.Done()
	return nil
}

func (c *Consumer) Stop(ctx context.Context) error {
	if c.topic != "" {
		if err := c.client.Unsubscribe(c.topic); err != nil {
			c.logger.Error("Failed to unsubscribe", zap.Error(err))
		}
	}

	c.logger.Info("MQTT telemetry consumer stopped")
	return nil
}

// handleMessage parses and ingests one published push. A bad payload is
// logged and dropped; the subscription stays healthy.
func (c *Consumer) handleMessage(topic string, payload []byte) error {
	c.logger.Debug("Received MQTT message",
		zap.String("topic", topic),
		zap.Int("payload_size", len(payload)),
	)

	var push domain.TelemetryPush
	if err := json.Unmarshal(payload, &push); err != nil {
		return fmt.Errorf("failed to unmarshal telemetry push: %w", err)
	}
	if push.TenantID == "" {
		return fmt.Errorf("telemetry push without tenant_id")
	}

	if err := c.ingestor.Ingest(context.Background(), &push); err != nil {
		return fmt.Errorf("failed to ingest telemetry push: %w", err)
	}

	c.logger.Debug("Ingested MQTT telemetry push", zap.String("tenant_id", push.TenantID))
	return nil
}
