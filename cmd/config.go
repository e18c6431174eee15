package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string
	LogLevel string

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string

	DispatchMaxRadiusKm           float64
	DispatchAutoAssign            bool
	DispatchMaxAssignmentAttempts int
	AgentMaxSampleAge             time.Duration

	EstimateAvgSpeedKmh float64
	EstimateBaseFee     float64
	EstimatePerKmFee    float64

	GeocoderURL               string
	GeocoderTimeout           time.Duration
	GeocoderFallbackLatitude  float64
	GeocoderFallbackLongitude float64

	KafkaBrokers          []string
	KafkaOrderStatusTopic string
	KafkaAgentTaskTopic   string
	KafkaRestockTopic     string

	SESRegion    string
	SESFromEmail string

	RetrySchedule  string
	RetryBatchSize int

	EventWorkers   int
	EventQueueSize int
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading .env from the working directory when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort: v.GetString("HTTP_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),

		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSslMode:     v.GetString("DB_SSLMODE"),

		DispatchMaxRadiusKm:           v.GetFloat64("DISPATCH_MAX_RADIUS_KM"),
		DispatchAutoAssign:            v.GetBool("DISPATCH_AUTO_ASSIGN"),
		DispatchMaxAssignmentAttempts: v.GetInt("DISPATCH_MAX_ASSIGNMENT_ATTEMPTS"),
		AgentMaxSampleAge:             v.GetDuration("AGENT_MAX_SAMPLE_AGE"),

		EstimateAvgSpeedKmh: v.GetFloat64("ESTIMATE_AVG_SPEED_KMH"),
		EstimateBaseFee:     v.GetFloat64("ESTIMATE_BASE_FEE"),
		EstimatePerKmFee:    v.GetFloat64("ESTIMATE_PER_KM_FEE"),

		GeocoderURL:               v.GetString("GEOCODER_URL"),
		GeocoderTimeout:           v.GetDuration("GEOCODER_TIMEOUT"),
		GeocoderFallbackLatitude:  v.GetFloat64("GEOCODER_FALLBACK_LAT"),
		GeocoderFallbackLongitude: v.GetFloat64("GEOCODER_FALLBACK_LON"),

		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderStatusTopic: v.GetString("KAFKA_ORDER_STATUS_TOPIC"),
		KafkaAgentTaskTopic:   v.GetString("KAFKA_AGENT_TASK_TOPIC"),
		KafkaRestockTopic:     v.GetString("KAFKA_RESTOCK_TOPIC"),

		SESRegion:    v.GetString("SES_REGION"),
		SESFromEmail: v.GetString("SES_FROM_EMAIL"),

		RetrySchedule:  v.GetString("RETRY_SCHEDULE"),
		RetryBatchSize: v.GetInt("RETRY_BATCH_SIZE"),

		EventWorkers:   v.GetInt("EVENT_WORKERS"),
		EventQueueSize: v.GetInt("EVENT_QUEUE_SIZE"),
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "fulfillment")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("DISPATCH_MAX_RADIUS_KM", 10.0)
	v.SetDefault("DISPATCH_AUTO_ASSIGN", true)
	v.SetDefault("DISPATCH_MAX_ASSIGNMENT_ATTEMPTS", 3)
	v.SetDefault("AGENT_MAX_SAMPLE_AGE", "0s")

	v.SetDefault("ESTIMATE_AVG_SPEED_KMH", 40.0)
	v.SetDefault("ESTIMATE_BASE_FEE", 500.0)
	v.SetDefault("ESTIMATE_PER_KM_FEE", 50.0)

	v.SetDefault("GEOCODER_TIMEOUT", "3s")
	v.SetDefault("GEOCODER_FALLBACK_LAT", 6.5244)
	v.SetDefault("GEOCODER_FALLBACK_LON", 3.3792)

	v.SetDefault("KAFKA_ORDER_STATUS_TOPIC", "fulfillment.order-status")
	v.SetDefault("KAFKA_AGENT_TASK_TOPIC", "fulfillment.agent-tasks")
	v.SetDefault("KAFKA_RESTOCK_TOPIC", "fulfillment.restock")

	v.SetDefault("RETRY_SCHEDULE", "*/10 * * * * *")
	v.SetDefault("RETRY_BATCH_SIZE", 50)
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.StorageDriver))
	}
	if c.EstimateAvgSpeedKmh <= 0 {
		errs = append(errs, errors.New("ESTIMATE_AVG_SPEED_KMH must be positive"))
	}
	if c.EstimateBaseFee < 0 || c.EstimatePerKmFee < 0 {
		errs = append(errs, errors.New("ESTIMATE_BASE_FEE and ESTIMATE_PER_KM_FEE must not be negative"))
	}
	if c.AgentMaxSampleAge < 0 {
		errs = append(errs, errors.New("AGENT_MAX_SAMPLE_AGE must not be negative"))
	}
	if c.SESRegion != "" && c.SESFromEmail == "" {
		errs = append(errs, errors.New("SES_FROM_EMAIL is required when SES_REGION is set"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
