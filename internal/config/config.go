package config

import (
	"time"
)

type (
	Config struct {
		App       App    `json:"app"`
		Redis     Redis  `json:"redis"`
		SecretKey string `json:"secret_key"`

		NewRelicLicenseKey string `json:"new_relic_license_key"`

		Catalog            CatalogConfig      `json:"catalog"`
		Orchestrator       OrchestratorConfig `json:"orchestrator"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`
		MessageBroker      MessageBroker      `json:"message_broker"`

		BillingGateway    HTTPConfiguration `json:"billing_gateway"`
		SettlementGateway HTTPConfiguration `json:"settlement_gateway"`
		WalletService     HTTPConfiguration `json:"wallet_service"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name"`
		LogOption       string        `json:"log_option"`
		LogLevel        string        `json:"log_level"`
	}

	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	// CatalogConfig points at the read-only provider catalog files and
	// controls how long parsed catalogs stay cached.
	CatalogConfig struct {
		PrefixFilePath string        `json:"prefix_file_path"`
		BillerFilePath string        `json:"biller_file_path"`
		CacheTTL       time.Duration `json:"cache_ttl"`
	}

	// OrchestratorConfig holds the knobs of the transaction flow. Zero
	// values fall back to the defaults applied in Normalize.
	OrchestratorConfig struct {
		DebounceInterval time.Duration `json:"debounce_interval"`
		// DebounceIntervalByCategory overrides DebounceInterval per
		// provider category, keyed by category id.
		DebounceIntervalByCategory map[string]time.Duration `json:"debounce_interval_by_category"`

		FetchTimeout  time.Duration `json:"fetch_timeout"`
		SubmitTimeout time.Duration `json:"submit_timeout"`

		MinConsumerNumberLength int `json:"min_consumer_number_length"`

		// MinAmountByCategory is the minimum submittable amount, keyed by
		// category id. Categories without an entry use MinAmountDefault.
		MinAmountByCategory map[string]string `json:"min_amount_by_category"`
		MinAmountDefault    string            `json:"min_amount_default"`

		// SubmissionRecordTTL bounds how long an idempotency record for a
		// requestId is kept after submission.
		SubmissionRecordTTL time.Duration `json:"submission_record_ttl"`

		SessionTTL time.Duration `json:"session_ttl"`
	}

	ExponentialBackOffConfig struct {
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
		MaxRetries        uint64        `json:"max_retries"`
	}

	MessageBroker struct {
		Brokers           []string `json:"brokers"`
		NotificationTopic string   `json:"notification_topic"`
		Enabled           bool     `json:"enabled"`
	}

	HTTPConfiguration struct {
		BaseURL       string        `json:"base_url"`
		AuthKey       string        `json:"auth_key"`
		AuthPass      string        `json:"auth_pass"`
		SecretKey     string        `json:"secret_key"`
		Timeout       time.Duration `json:"timeout"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
	}
)

const (
	DefaultDebounceInterval        = 700 * time.Millisecond
	DefaultFetchTimeout            = 15 * time.Second
	DefaultSubmitTimeout           = 30 * time.Second
	DefaultMinConsumerNumberLength = 6
	DefaultSubmissionRecordTTL     = 24 * time.Hour
	DefaultSessionTTL              = 30 * time.Minute
)

// Normalize fills unset orchestrator knobs with their defaults.
func (c *OrchestratorConfig) Normalize() {
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = DefaultDebounceInterval
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = DefaultSubmitTimeout
	}
	if c.MinConsumerNumberLength <= 0 {
		c.MinConsumerNumberLength = DefaultMinConsumerNumberLength
	}
	if c.SubmissionRecordTTL <= 0 {
		c.SubmissionRecordTTL = DefaultSubmissionRecordTTL
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
}

// DebounceFor returns the debounce interval for a category, falling back to
// the global interval.
func (c OrchestratorConfig) DebounceFor(category string) time.Duration {
	if d, ok := c.DebounceIntervalByCategory[category]; ok && d > 0 {
		return d
	}
	return c.DebounceInterval
}
