package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Pass),
		strings.TrimSuffix(d.Host+":"+d.Port, ":"),
		d.Name,
	)
}

// Kafka stores broker and topic settings. Empty brokers disable both the
// intake consumer and the event bridge.
type Kafka struct {
	Brokers     []string
	IntakeTopic string
	IntakeGroup string
	BridgeTopic string
}

// Redis stores dedup store settings. An empty Addr disables dedup.
type Redis struct {
	Addr     string
	DedupTTL time.Duration
}

// NotifyChannel holds one webhook channel's settings. An empty Endpoint
// leaves the channel unconfigured.
type NotifyChannel struct {
	Endpoint string
	APIKey   string
}

// Notify stores notification dispatcher settings.
type Notify struct {
	Alert       NotifyChannel
	SMS         NotifyChannel
	Push        NotifyChannel
	SendTimeout time.Duration
}

// Fanout stores event fanout settings.
type Fanout struct {
	Buffer int
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the debug server settings. An empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores dispatch service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Redis     Redis
	Notify    Notify
	Fanout    Fanout
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration from .env (if present), then the environment,
// then flags, with later sources overriding earlier ones.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Redis:     DefaultRedis(),
		Notify:    DefaultNotify(),
		Fanout:    DefaultFanout(),
		RateLimit: DefaultRateLimit(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envStr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envStr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envStr("POSTGRES_DB", cfg.DB.Name)

	if brokers := envStr("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	cfg.Kafka.IntakeTopic = envStr("KAFKA_INTAKE_TOPIC", cfg.Kafka.IntakeTopic)
	cfg.Kafka.IntakeGroup = envStr("KAFKA_INTAKE_GROUP", cfg.Kafka.IntakeGroup)
	cfg.Kafka.BridgeTopic = envStr("KAFKA_BRIDGE_TOPIC", cfg.Kafka.BridgeTopic)

	cfg.Redis.Addr = envStr("REDIS_ADDR", cfg.Redis.Addr)
	if cfg.Redis.DedupTTL, err = envDuration("REDIS_DEDUP_TTL", cfg.Redis.DedupTTL); err != nil {
		return nil, err
	}

	cfg.Notify.Alert.Endpoint = envStr("NOTIFY_ALERT_ENDPOINT", "")
	cfg.Notify.Alert.APIKey = envStr("NOTIFY_ALERT_API_KEY", "")
	cfg.Notify.SMS.Endpoint = envStr("NOTIFY_SMS_ENDPOINT", "")
	cfg.Notify.SMS.APIKey = envStr("NOTIFY_SMS_API_KEY", "")
	cfg.Notify.Push.Endpoint = envStr("NOTIFY_PUSH_ENDPOINT", "")
	cfg.Notify.Push.APIKey = envStr("NOTIFY_PUSH_API_KEY", "")
	if cfg.Notify.SendTimeout, err = envDuration("NOTIFY_SEND_TIMEOUT", cfg.Notify.SendTimeout); err != nil {
		return nil, err
	}

	if cfg.Fanout.Buffer, err = envInt("FANOUT_BUFFER", cfg.Fanout.Buffer); err != nil {
		return nil, err
	}

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	cfg.Pprof.Addr = envStr("PPROF_ADDR", "")
	cfg.Pprof.User = envStr("PPROF_USER", "")
	cfg.Pprof.Pass = envStr("PPROF_PASS", "")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid postgres port: %q", cfg.DB.Port)
	}
	if cfg.Fanout.Buffer <= 0 {
		return nil, fmt.Errorf("invalid fanout buffer: %d", cfg.Fanout.Buffer)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
