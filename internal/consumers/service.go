package consumers

import (
	"context"
	"log/slog"

	"github.com/nats-io/stan.go"

	"tourdesk/internal/config"
	"tourdesk/internal/fulfillment"
	"tourdesk/internal/messaging"
	"tourdesk/internal/models"
)

const queueGroup = "consumers"

type ConsumerService struct {
	nats      *messaging.NATSClient
	publisher *fulfillment.Publisher
	handlers  *Handlers
	subs      []stan.Subscription
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	publisher, err := fulfillment.NewPublisher(cfg.RabbitMQ)
	if err != nil {
		natsClient.Close()
		return nil, err
	}

	return &ConsumerService{
		nats:      natsClient,
		publisher: publisher,
		handlers:  NewHandlers(publisher),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	routes := []struct {
		subject string
		handler stan.MsgHandler
	}{
		{models.EventOrderConfirmed, cs.handlers.HandleOrderConfirmed},
		{models.EventCheckoutStepChanged, cs.handlers.HandleStepChanged},
	}

	for _, r := range routes {
		sub, err := cs.nats.SubscribeQueue(r.subject, queueGroup, r.handler)
		if err != nil {
			return err
		}
		cs.subs = append(cs.subs, sub)
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	for _, sub := range cs.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}

	if err := cs.nats.Close(); err != nil {
		slog.Error("Error closing NATS connection", "error", err)
	}

	return cs.publisher.Close()
}
