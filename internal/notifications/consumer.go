package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"ticketly/pkg/logger"
)

// Consumer runs the email delivery workers that drain the notification
// topic.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	Topics         []string
	SessionTimeout time.Duration
	Heartbeat      time.Duration
	RetryBackoff   time.Duration
	OffsetOldest   bool
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topics:         []string{topic},
		SessionTimeout: 30 * time.Second,
		Heartbeat:      3 * time.Second,
		RetryBackoff:   100 * time.Millisecond,
		OffsetOldest:   false,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.Retry.Backoff = config.RetryBackoff
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors(ctx)

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}

	logger.GetDefault().Info("notification consumer workers started",
		"workers", numWorkers,
		"topics", c.config.Topics,
	)
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		workerID:     workerID,
		emailService: c.emailService,
	}

	for {
		if ctx.Err() != nil {
			return
		}
		// Consume blocks until a rebalance or error; loop to rejoin.
		if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
			logger.GetDefault().Error("consumer worker error",
				"worker", workerID,
				"error", err,
			)
			time.Sleep(c.config.RetryBackoff)
		}
	}
}

func (c *kafkaConsumer) handleErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-c.consumerGroup.Errors():
			if !ok {
				return
			}
			logger.GetDefault().Error("consumer group error", "error", err)
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.consumerGroup.Close()
}

type groupHandler struct {
	workerID     int
	emailService EmailService
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	var notification Notification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		logger.GetDefault().Error("failed to decode notification, skipping",
			"worker", h.workerID,
			"offset", message.Offset,
			"error", err,
		)
		return
	}

	for {
		err := h.emailService.SendNotification(ctx, &notification)
		if err == nil {
			notification.MarkSent()
			return
		}

		notification.MarkFailed(err)
		notification.RetryCount++
		if !notification.ShouldRetry() {
			logger.GetDefault().Error("notification delivery abandoned",
				"worker", h.workerID,
				"notification_id", notification.ID,
				"kind", notification.Kind,
				"error", err,
			)
			return
		}
		time.Sleep(time.Second * time.Duration(notification.RetryCount))
	}
}
