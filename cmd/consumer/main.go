package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/store/cmd/config"
	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/store/utils/logger"
	"go.uber.org/zap"
)

// auditProductEvent writes one structured log line per product event.
// Fields absent from the event, such as the price of a deleted product, are left out.
func auditProductEvent(ctx context.Context, event model.ProductEvent) error {
	logger.Info("product event", auditFields(event)...)
	return nil
}

func auditFields(event model.ProductEvent) []zap.Field {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.Int64("product_id", event.ProductID),
	}
	if event.Name != "" {
		fields = append(fields, zap.String("name", event.Name))
	}
	if event.Price != nil {
		fields = append(fields, zap.String("price", event.Price.String()))
	}
	if event.Stock != nil {
		fields = append(fields, zap.Int("stock", *event.Stock))
	}
	return append(fields, zap.Time("occurred_at", event.OccurredAt))
}

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done, err := consumer.Start(ctx, auditProductEvent)
	if err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("product audit consumer running",
		zap.String("exchange", cfg.RabbitMQ.Exchange),
		zap.String("queue", cfg.RabbitMQ.Queue),
	)

	select {
	case <-ctx.Done():
	case <-done:
		logger.Warn("consumer channel closed")
	}
}
