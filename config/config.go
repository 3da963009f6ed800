package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Policy  PolicyConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	Driver     string
	SQLitePath string
	Redis      RedisConfig
	DB         DBConfig
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type PolicyConfig struct {
	// RestrictPatientRecords enables the stricter access rule: a
	// Patient-role session may only view its own patient record. Off by
	// default.
	RestrictPatientRecords bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "dental.db")
	viper.SetDefault("REDIS_KEY_PREFIX", "dental")
	viper.SetDefault("POLICY_RESTRICT_PATIENT_RECORDS", false)

	// A missing .env is fine; defaults and the environment cover it.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			Driver:     viper.GetString("STORAGE_DRIVER"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
			Redis: RedisConfig{
				Host:      viper.GetString("REDIS_HOST"),
				Port:      viper.GetString("REDIS_PORT"),
				Password:  viper.GetString("REDIS_PASSWORD"),
				DB:        viper.GetInt("REDIS_DB"),
				KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
			},
			DB: DBConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				Name:     viper.GetString("DB_NAME"),
			},
		},
		Policy: PolicyConfig{
			RestrictPatientRecords: viper.GetBool("POLICY_RESTRICT_PATIENT_RECORDS"),
		},
	}

	return config, nil
}
