package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aquasolar-cloud service configuration, loaded from environment.
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	MQTT      MQTTConfig
	SMS       SMSConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// GetDSN builds a lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// MQTTConfig settings for the optional telemetry ingest bridge.
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// SMSConfig settings for the alert SMS gateway.
type SMSConfig struct {
	Enabled     bool
	GatewayURL  string
	APIKey      string
	Sender      string
	AdminNumber string
}

// TelemetryConfig write-reduction tuning. Intervals gate how often each
// durable stream accepts a new entry; thresholds define a significant change.
type TelemetryConfig struct {
	SensorLogInterval   time.Duration
	PowerLogInterval    time.Duration
	ConsumptionInterval time.Duration
	FlowThreshold       float64
	BatteryThreshold    float64
	BatteryFloor        float64
	LivenessWindow      time.Duration
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "aquasolar")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// MQTT ingest bridge, disabled by default; HTTP push is the primary path.
	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "aquasolar-cloud")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "aquasolar/telemetry")

	cfg.SMS.Enabled = getEnv("SMS_ENABLED", "false") == "true"
	cfg.SMS.GatewayURL = getEnv("SMS_GATEWAY_URL", "")
	cfg.SMS.APIKey = getEnv("SMS_API_KEY", "")
	cfg.SMS.Sender = getEnv("SMS_SENDER", "AquaSolar")
	cfg.SMS.AdminNumber = getEnv("SMS_ADMIN_NUMBER", "+639850326985")

	cfg.Telemetry.SensorLogInterval = time.Duration(parseInt(getEnv("SENSOR_LOG_INTERVAL", "300"), 300)) * time.Second
	cfg.Telemetry.PowerLogInterval = time.Duration(parseInt(getEnv("POWER_LOG_INTERVAL", "600"), 600)) * time.Second
	cfg.Telemetry.ConsumptionInterval = time.Duration(parseInt(getEnv("CONSUMPTION_INTERVAL", "1800"), 1800)) * time.Second
	cfg.Telemetry.FlowThreshold = parseFloat(getEnv("FLOW_THRESHOLD", "0.5"), 0.5)
	cfg.Telemetry.BatteryThreshold = parseFloat(getEnv("BATTERY_THRESHOLD", "5"), 5)
	cfg.Telemetry.BatteryFloor = parseFloat(getEnv("BATTERY_FLOOR", "10"), 10)
	cfg.Telemetry.LivenessWindow = time.Duration(parseInt(getEnv("LIVENESS_WINDOW", "60"), 60)) * time.Second

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
