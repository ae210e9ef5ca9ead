package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		OrderStatusGaugeInterval time.Duration
	}

	HTTPServer struct {
		Port              string
		RequestTimeout    time.Duration // middleware timeout
		RateLimiterQPS    int           // middleware rate limiter refill per client
		RateLimiterBurst  int           // middleware rate limiter capacity per client
		PprofEnabled      bool
		PprofPort         string
		CORSAllowedOrigin string
		// адреса прокси, которым разрешено передавать X-Forwarded-For
		TrustedProxies []netip.Prefix
	}

	Database struct {
		Host           string
		Port           string
		User           string
		Password       string
		DBName         string
		SSLMode        string
		MaxConns       int32
		MigrateOnStart bool
	}

	// Progression - смещения автоматических переходов от времени создания заказа.
	// Нулевые значения заменяются значениями по умолчанию движка.
	Progression struct {
		PreparingAfter time.Duration
		ReadyAfter     time.Duration
		CompletedAfter time.Duration
		UpdateTimeout  time.Duration
		Guarded        bool
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks       Tasks
		Server      HTTPServer
		Database    Database
		Progression Progression
		Kafka       Kafka
	}

	// Tracker - настройки терминального клиента.
	Tracker struct {
		APIURL       string
		SyncInterval time.Duration
		APITimeout   time.Duration
	}
)

const (
	defaultAPIURL       = "http://localhost:5000"
	defaultSyncInterval = 5 * time.Second
	defaultAPITimeout   = 10 * time.Second
)

// Load читает конфигурацию HTTP сервиса. Kafka для него необязательна:
// без KAFKA_BROKERS события не публикуются.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker читает конфигурацию воркера, которому нужна только Kafka.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateKafka(&cfg.Kafka); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func LoadTracker() (*Tracker, error) {
	syncInterval, err := osGetEnvDuration("ORDER_SYNC_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	apiTimeout, err := osGetEnvDuration("CANTEEN_API_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := &Tracker{
		APIURL:       strings.TrimRight(os.Getenv("CANTEEN_API_URL"), "/"),
		SyncInterval: syncInterval,
		APITimeout:   apiTimeout,
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.SyncInterval == 0 {
		cfg.SyncInterval = defaultSyncInterval
	}
	if cfg.APITimeout == 0 {
		cfg.APITimeout = defaultAPITimeout
	}

	if cfg.SyncInterval < 0 {
		return nil, errors.New("ORDER_SYNC_INTERVAL must be positive")
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	gaugeInterval, err := osGetEnvDuration("BACKGROUND_ORDER_STATUS_GAUGE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	preparingAfter, err := osGetEnvDuration("PROGRESSION_PREPARING_AFTER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	readyAfter, err := osGetEnvDuration("PROGRESSION_READY_AFTER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	completedAfter, err := osGetEnvDuration("PROGRESSION_COMPLETED_AFTER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	updateTimeout, err := osGetEnvDuration("PROGRESSION_UPDATE_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	guarded, err := osGetBool("PROGRESSION_GUARDED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrateOnStart, err := osGetBool("POSTGRES_MIGRATE_ON_START")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	trustedProxies, err := osGetPrefixes("TRUSTED_PROXIES")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			OrderStatusGaugeInterval: gaugeInterval,
		},
		Server: HTTPServer{
			Port:              os.Getenv("PORT"),
			RequestTimeout:    requestTimeout,
			RateLimiterQPS:    rateLimiterQPS,
			RateLimiterBurst:  rateLimiterBurst,
			PprofEnabled:      pprofEnabled,
			PprofPort:         os.Getenv("PPROF_PORT"),
			CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
			TrustedProxies:    trustedProxies,
		},
		Database: Database{
			Host:           os.Getenv("POSTGRES_HOST"),
			Port:           os.Getenv("POSTGRES_PORT"),
			User:           os.Getenv("POSTGRES_USER"),
			Password:       os.Getenv("POSTGRES_PASSWORD"),
			DBName:         os.Getenv("POSTGRES_DB"),
			SSLMode:        os.Getenv("POSTGRES_SSLMODE"),
			MaxConns:       int32(maxConns), //nolint:gosec // проверяется в validateConfig
			MigrateOnStart: migrateOnStart,
		},
		Progression: Progression{
			PreparingAfter: preparingAfter,
			ReadyAfter:     readyAfter,
			CompletedAfter: completedAfter,
			UpdateTimeout:  updateTimeout,
			Guarded:        guarded,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
				},
			},
		},
	}, nil
}

// BrokerList возвращает список брокеров из KAFKA_BROKERS, пустой если не задано.
func (k *Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS must not be negative")
	}

	if cfg.Tasks.OrderStatusGaugeInterval == time.Duration(0) {
		return errors.New("BACKGROUND_ORDER_STATUS_GAUGE_INTERVAL is required")
	}

	p := cfg.Progression
	if p.PreparingAfter < 0 || p.ReadyAfter < 0 || p.CompletedAfter < 0 || p.UpdateTimeout < 0 {
		return errors.New("PROGRESSION_* durations must not be negative")
	}

	// публикация событий включается только вместе с брокерами
	if len(cfg.Kafka.BrokerList()) > 0 && cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

func validateKafka(k *Kafka) error {
	if len(k.BrokerList()) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if k.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if k.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if k.Handlers.OrderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osGetPrefixes разбирает список через запятую, где каждый элемент - CIDR
// или одиночный адрес.
func osGetPrefixes(s string) ([]netip.Prefix, error) {
	var res []netip.Prefix
	for _, item := range strings.Split(os.Getenv(s), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR in %s=%q: %w", s, item, err)
			}
			res = append(res, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid address in %s=%q: %w", s, item, err)
		}
		addr = addr.Unmap()
		res = append(res, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res, nil
}
