package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	DatabaseURL string
	OptionsPath string
}

// DefaultDatabaseURL - база в памяти: график живёт только в рамках сессии
const DefaultDatabaseURL = "file::memory:?cache=shared"

var instance *EngineConfig
var once sync.Once

func GetEngineConfig() *EngineConfig {
	once.Do(func() {
		instance = &EngineConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", DefaultDatabaseURL)
		instance.OptionsPath = getEnv("ATTENDANCE_CONFIG", "")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}

	return defaultVal
}
