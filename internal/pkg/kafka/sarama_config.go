package kafka

import (
	"Pulse/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 统一初始化消费者与生产者共用的 sarama.Config
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetNewest

	c.Consumer.Group.Session.Timeout = time.Duration(kafkaCfg.Consumer.SessionTimeout) * time.Second
	c.Consumer.Group.Heartbeat.Interval = time.Duration(kafkaCfg.Consumer.HeartbeatInterval) * time.Second
	c.Consumer.Group.Rebalance.Timeout = time.Duration(kafkaCfg.Consumer.RebalanceTimeout) * time.Second
	c.Consumer.Offsets.AutoCommit.Enable = false
	c.Consumer.MaxProcessingTime = time.Duration(kafkaCfg.Consumer.MaxProcessingTime) * time.Second

	// 同步生产者必须开启
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Idempotent = true
	c.Net.MaxOpenRequests = 1

	return c
}
