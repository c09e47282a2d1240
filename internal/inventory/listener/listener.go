package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCompleted = "OrderCompleted"
	EventOrderCancelled = "OrderCancelled"
)

// MessageReader is the subset of *kafka.Reader the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type InventoryListener struct {
	reader  MessageReader
	uc      inventory.UseCase
	logger  logger.ZapLogger
	backoff time.Duration
}

func NewKafkaReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func NewInventoryListener(reader MessageReader, uc inventory.UseCase, log logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		reader:  reader,
		uc:      uc,
		logger:  log,
		backoff: time.Second,
	}
}

// Start blocks until ctx is cancelled or the reader is closed.
func (l *InventoryListener) Start(ctx context.Context) error {
	l.logger.Info("starting inventory order listener")
	defer func() {
		if err := l.reader.Close(); err != nil {
			l.logger.Warn("failed to close order reader", zap.Error(err))
		}
	}()

	for {
		msg, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("stopping inventory order listener")
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			l.logger.Error("failed to read order message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(l.backoff):
			}
			continue
		}
		l.HandleMessage(ctx, msg.Value)
	}
}

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id"`
	Quantity  int     `json:"quantity"`
}

// HandleMessage applies one order event to the ledger. Item failures are
// logged and do not stop the remaining items.
func (l *InventoryListener) HandleMessage(ctx context.Context, value []byte) {
	var event OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		metrics.OrderEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		return
	}

	apply, reason := l.operationFor(event.EventType)
	if apply == nil {
		l.logger.Debug("ignoring order event", zap.String("event_type", event.EventType))
		metrics.OrderEventsTotal.WithLabelValues(event.EventType, "ignored").Inc()
		return
	}

	log := l.logger.With(
		zap.String("order_id", event.Payload.ID),
		zap.String("event_type", event.EventType),
	)
	log.Info("processing order event", zap.Int("items", len(event.Payload.Items)))

	result := "ok"
	for _, item := range event.Payload.Items {
		_, err := apply(ctx, &dto.StockInput{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			ReferenceID: event.Payload.ID,
			Reason:      reason,
		})
		if err != nil {
			result = "partial"
			log.Error("failed to apply order item",
				zap.String("product_id", item.ProductID),
				zap.String("kind", string(apperror.KindOf(err))),
				zap.Error(err),
			)
		}
	}
	metrics.OrderEventsTotal.WithLabelValues(event.EventType, result).Inc()
}

type stockFunc func(ctx context.Context, input *dto.StockInput) (*model.Inventory, error)

func (l *InventoryListener) operationFor(eventType string) (stockFunc, string) {
	switch eventType {
	case EventOrderPlaced:
		return l.uc.ReserveStock, "order placed"
	case EventOrderCompleted:
		return l.uc.CommitStock, "order completed"
	case EventOrderCancelled:
		return l.uc.ReleaseStock, "order cancelled"
	default:
		return nil, ""
	}
}
