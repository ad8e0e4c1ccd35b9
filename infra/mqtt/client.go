package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremon "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker         string          `json:"broker" yaml:"broker"`
	ClientID       string          `json:"client_id" yaml:"client_id"`
	Username       string          `json:"username" yaml:"username"`
	Password       string          `json:"password" yaml:"password"`
	TopicPrefix    string          `json:"topic_prefix" yaml:"topic_prefix"`
	UseTLS         bool            `json:"use_tls" yaml:"use_tls"`
	ClientCert     string          `json:"client_cert" yaml:"client_cert"`
	ClientKey      string          `json:"client_key" yaml:"client_key"`
	CABundle       string          `json:"ca_bundle" yaml:"ca_bundle"`
	AuthMethod     string          `json:"auth_method" yaml:"auth_method"`
	QoS            map[string]byte `json:"qos" yaml:"qos"`
	LWTTopic       string          `json:"lwt_topic" yaml:"lwt_topic"`
	LWTPayload     string          `json:"lwt_payload" yaml:"lwt_payload"`
	LWTQoS         byte            `json:"lwt_qos" yaml:"lwt_qos"`
	LWTRetain      bool            `json:"lwt_retain" yaml:"lwt_retain"`
	MaxRetries     int             `json:"max_retries" yaml:"max_retries"`
	BackoffMS      int             `json:"backoff_ms" yaml:"backoff_ms"`
	ConnectTimeout time.Duration   `json:"connect_timeout" yaml:"connect_timeout"`
	TLSConfig      *tls.Config     `json:"-" yaml:"-"`
}

// SetDefaults fills the topic prefix, retry policy and connect timeout.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "scev"
	}
	if c.ClientID == "" {
		c.ClientID = "scev-recovery"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 100
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

// Validate checks the broker address and authentication mode.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required")
	}
	switch c.AuthMethod {
	case "", "username_password", "certificate", "both":
	default:
		return fmt.Errorf("mqtt: unknown auth_method %q", c.AuthMethod)
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// Publisher publishes JSON telemetry under a topic prefix and dispatches
// messages received on subscribed subtopics.
type Publisher struct {
	cli    pahoClient
	prefix string
	qos    map[string]byte

	mu         sync.Mutex
	handlers   map[string]func([]byte)
	logger     logger.Logger
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewPublisher connects to the MQTT broker. Subscriptions registered with
// Subscribe are restored on every reconnect.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_client")
	p := &Publisher{
		prefix:     strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:        cfg.QoS,
		handlers:   make(map[string]func([]byte)),
		logger:     log,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		timeout:    cfg.ConnectTimeout,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		p.resubscribe(c)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(p.timeout) {
		return nil, fmt.Errorf("mqtt: connect to %s timed out after %s", cfg.Broker, p.timeout)
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	p.cli = c
	return p, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

// Topic returns the full topic for a subtopic.
func (p *Publisher) Topic(sub string) string {
	return p.prefix + "/" + sub
}

func (p *Publisher) qosFor(sub string) byte {
	if q, ok := p.qos[sub]; ok {
		return q
	}
	return 0
}

// PublishJSON marshals v and publishes it on the prefixed subtopic, retrying
// with exponential backoff. The final failure is reported to the monitor.
func (p *Publisher) PublishJSON(sub string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mqtt: encode %s: %w", sub, err)
	}
	topic := p.Topic(sub)
	qos := p.qosFor(sub)

	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published %d bytes to %s", len(payload), topic)
			return nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	coremon.CaptureException(publishErr, map[string]string{"module": "mqtt", "topic": topic})
	return publishErr
}

// Subscribe registers handler for the prefixed subtopic and subscribes
// immediately when connected.
func (p *Publisher) Subscribe(sub string, handler func(payload []byte)) error {
	p.mu.Lock()
	p.handlers[sub] = handler
	p.mu.Unlock()
	if p.cli == nil || !p.cli.IsConnected() {
		return nil
	}
	token := p.cli.Subscribe(p.Topic(sub), p.qosFor(sub), p.dispatch(sub))
	token.Wait()
	return token.Error()
}

func (p *Publisher) resubscribe(c paho.Client) {
	p.mu.Lock()
	subs := make([]string, 0, len(p.handlers))
	for sub := range p.handlers {
		subs = append(subs, sub)
	}
	p.mu.Unlock()
	for _, sub := range subs {
		if token := c.Subscribe(p.Topic(sub), p.qosFor(sub), p.dispatch(sub)); token.Wait() && token.Error() != nil {
			p.logger.Errorf("subscribe error: %v", token.Error())
		}
	}
}

func (p *Publisher) dispatch(sub string) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		p.mu.Lock()
		h := p.handlers[sub]
		p.mu.Unlock()
		if h == nil {
			return
		}
		p.logger.Debugf("received %d bytes on %s", len(msg.Payload()), msg.Topic())
		h(msg.Payload())
	}
}

// Close gracefully closes the MQTT connection.
func (p *Publisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
