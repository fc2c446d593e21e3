// Package mirror republishes panel document changes to an MQTT broker so
// other consumers can follow the device state the panel displays.
package mirror

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"enet_panel/internal/config"
	"enet_panel/internal/logger"
	"enet_panel/internal/panel"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// client is the subset of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

type Publisher struct {
	client client
	topic  string
	qos    byte
	log    *logger.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPublisher connects to the configured broker. It returns nil, nil when
// mirroring is disabled. A failed initial connection is logged and retried
// in the background.
func NewPublisher(cfg config.MQTTConfig, log *logger.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("mqtt host is empty")
	}
	if cfg.QoS > 2 {
		return nil, fmt.Errorf("mqtt qos %d out of range", cfg.QoS)
	}
	if log == nil {
		log = logger.Nop()
	}

	scheme := "tcp"
	if cfg.UseTLS {
		scheme = "tls"
	}
	broker := fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID("enet_panel_" + uuid.NewString()[:8])
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetKeepAlive(time.Minute)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Infow("mqtt_connected", "broker", broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warnw("mqtt_connection_lost", "broker", broker, "err", err)
	})

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Warnw("mqtt_connect_timeout", "broker", broker)
	} else if err := token.Error(); err != nil {
		log.Warnw("mqtt_connect_failed", "broker", broker, "err", err)
	}

	return newPublisher(c, cfg.Topic, cfg.QoS, log), nil
}

func newPublisher(c client, topic string, qos byte, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		client: c,
		topic:  strings.TrimRight(topic, "/"),
		qos:    qos,
		log:    log,
	}
}

// Topic returns the topic a change to region id is published on.
func (p *Publisher) Topic(id string) string {
	if p.topic == "" {
		return id
	}
	return p.topic + "/" + id
}

// Handle publishes c as a retained JSON message. It has the signature of a
// panel.Document subscriber and does not block on the broker.
func (p *Publisher) Handle(c panel.Change) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	payload, err := json.Marshal(c)
	if err != nil {
		p.wg.Done()
		p.log.Errorw("mqtt_marshal_failed", "id", c.ID, "err", err)
		return
	}

	topic := p.Topic(c.ID)
	token := p.client.Publish(topic, p.qos, true, payload)
	go func() {
		defer p.wg.Done()
		if !token.WaitTimeout(publishTimeout) {
			p.log.Debugw("mqtt_publish_timeout", "topic", topic)
			return
		}
		if err := token.Error(); err != nil {
			p.log.Debugw("mqtt_publish_failed", "topic", topic, "err", err)
		}
	}()
}

// Close waits for pending publishes and disconnects. Later changes are
// ignored.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	p.client.Disconnect(quiesceMillis)
}
