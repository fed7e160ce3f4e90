package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultHighLoadThreshold - доля загрузки, выше которой участник считается HighLoad
	DefaultHighLoadThreshold = 0.8
	// DefaultRecentEventsLimit - сколько последних переназначений показывает дашборд
	DefaultRecentEventsLimit = 5
)

type Config struct {
	Env      string
	HTTP     HTTPConfig
	Database DatabaseConfig
	Workload WorkloadConfig
}

type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// WorkloadConfig - политики движка балансировки
type WorkloadConfig struct {
	HighLoadThreshold float64
	RecentEventsLimit int
	// CountDoneTasks - учитывать ли задачи в статусе Done при подсчёте загрузки
	CountDoneTasks bool
	// DrainToHighWater - при автобалансировке разгружать участника до уровня ниже HighLoad,
	// а не только до его capacity. По умолчанию выключено: перенос прекращается, как только
	// загрузка <= capacity, поэтому при A(cap 2: Low, Medium, High) и B(cap 3, 1 задача)
	// уезжает только Low (A=2, B=2). С WORKLOAD_DRAIN_TO_HIGH_WATER=true уезжают Low и Medium
	// (A=1, B=3), пока состояние A не станет Normal.
	DrainToHighWater   bool
	ExecuteConcurrency int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("ENV", "dev"),
		HTTP: HTTPConfig{
			Addr:         getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "balancer"),
			Password: getEnv("DB_PASSWORD", "balancer"),
			DBName:   getEnv("DB_NAME", "task_balancer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Workload: WorkloadConfig{
			HighLoadThreshold:  getEnvFloat("WORKLOAD_HIGH_LOAD_THRESHOLD", DefaultHighLoadThreshold),
			RecentEventsLimit:  getEnvInt("WORKLOAD_RECENT_EVENTS_LIMIT", DefaultRecentEventsLimit),
			CountDoneTasks:     getEnvBool("WORKLOAD_COUNT_DONE_TASKS", true),
			DrainToHighWater:   getEnvBool("WORKLOAD_DRAIN_TO_HIGH_WATER", false),
			ExecuteConcurrency: getEnvInt("WORKLOAD_EXECUTE_CONCURRENCY", 1),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
