package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config — полная конфигурация проекта
type Config struct {
	Database  DBConfig
	RabbitMQ  MQConfig
	Redis     RedisConfig
	WebSocket WSConfig
	Services  ServicesConfig
	JWT       JWTConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type MQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type WSConfig struct {
	Port int
}

type ServicesConfig struct {
	IdentityServicePort int
	TripServicePort     int
	DriverServicePort   int
}

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// Load — загрузка из CONFIG_DIR (по умолчанию ./config) + ENV перекрывает
func Load() Config {
	configDir := getEnv("CONFIG_DIR", "./config")
	cfg := Config{}

	dbKV, _ := parseYAML(filepath.Join(configDir, "db.yaml"))
	cfg.Database.Host = getStrWithEnv("DB_HOST", dbKV, "host", "localhost")
	cfg.Database.Port = getIntWithEnv("DB_PORT", dbKV, "port", 5432)
	cfg.Database.User = getStrWithEnv("DB_USER", dbKV, "user", "tuktik_user")
	cfg.Database.Password = getStrWithEnv("DB_PASSWORD", dbKV, "password", "tuktik_pass")
	cfg.Database.Database = getStrWithEnv("DB_NAME", dbKV, "database", "tuktik_db")
	cfg.Database.SSLMode = getStrWithEnv("DB_SSLMODE", dbKV, "sslmode", "disable")

	mqKV, _ := parseYAML(filepath.Join(configDir, "mq.yaml"))
	cfg.RabbitMQ.Host = getStrWithEnv("RABBITMQ_HOST", mqKV, "host", "localhost")
	cfg.RabbitMQ.Port = getIntWithEnv("RABBITMQ_PORT", mqKV, "port", 5672)
	cfg.RabbitMQ.User = getStrWithEnv("RABBITMQ_USER", mqKV, "user", "guest")
	cfg.RabbitMQ.Password = getStrWithEnv("RABBITMQ_PASSWORD", mqKV, "password", "guest")
	cfg.RabbitMQ.VHost = getStrWithEnv("RABBITMQ_VHOST", mqKV, "vhost", "/")

	redisKV, _ := parseYAML(filepath.Join(configDir, "redis.yaml"))
	cfg.Redis.Host = getStrWithEnv("REDIS_HOST", redisKV, "host", "localhost")
	cfg.Redis.Port = getIntWithEnv("REDIS_PORT", redisKV, "port", 6379)
	cfg.Redis.Password = getStrWithEnv("REDIS_PASSWORD", redisKV, "password", "")
	cfg.Redis.DB = getIntWithEnv("REDIS_DB", redisKV, "db", 0)

	wsKV, _ := parseYAML(filepath.Join(configDir, "ws.yaml"))
	cfg.WebSocket.Port = getIntWithEnv("WS_PORT", wsKV, "port", 8080)

	svcKV, _ := parseYAML(filepath.Join(configDir, "service.yaml"))
	cfg.Services.IdentityServicePort = getIntWithEnv("IDENTITY_SERVICE_PORT", svcKV, "identity_service", 3000)
	cfg.Services.TripServicePort = getIntWithEnv("TRIP_SERVICE_PORT", svcKV, "trip_service", 3001)
	cfg.Services.DriverServicePort = getIntWithEnv("DRIVER_SERVICE_PORT", svcKV, "driver_service", 3002)

	jwtKV, _ := parseYAML(filepath.Join(configDir, "jwt.yaml"))
	if sec, ok := jwtKV["jwt"]; ok {
		cfg.JWT.Secret = getStrWithEnvNested("JWT_SECRET", sec, "secret", "dev_secret")
		cfg.JWT.ExpiryMinutes = getIntWithEnvNested("JWT_EXPIRY_MINUTES", sec, "expiry_minutes", 60)
	} else {
		cfg.JWT.Secret = getStrWithEnv("JWT_SECRET", jwtKV, "secret", "dev_secret")
		cfg.JWT.ExpiryMinutes = getIntWithEnv("JWT_EXPIRY_MINUTES", jwtKV, "expiry_minutes", 60)
	}

	return cfg
}

// parseYAML — парсит простые YAML файлы без глубокой вложенности.
// Формат: key: value (плоский) либо section: \n  key: value
func parseYAML(path string) (map[string]map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]map[string]string{}
	section := ""

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			if result[section] == nil {
				result[section] = map[string]string{}
			}
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if section != "" {
			result[section][key] = val
		} else {
			if result[""] == nil {
				result[""] = map[string]string{}
			}
			result[""][key] = val
		}
	}

	return result, sc.Err()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getStrWithEnv(envKey string, yaml map[string]map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if val, ok := yaml[""][key]; ok && val != "" {
		return val
	}
	return def
}

func getIntWithEnv(envKey string, yaml map[string]map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := yaml[""][key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getStrWithEnvNested(envKey string, section map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if val, ok := section[key]; ok && val != "" {
		return val
	}
	return def
}

func getIntWithEnvNested(envKey string, section map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := section[key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

// DSN возвращает строку подключения к БД
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// AMQPURL возвращает URL подключения к RabbitMQ
func (c MQConfig) AMQPURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

// Addr возвращает адрес Redis
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
