package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env              string        `mapstructure:"ENV"`
	Port             string        `mapstructure:"PORT"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	AIURL            string        `mapstructure:"AI_URL"`
	AIAPIKey         string        `mapstructure:"AI_API_KEY"`
	GeocodeURL       string        `mapstructure:"GEOCODE_URL"`
	FFmpegPath       string        `mapstructure:"FFMPEG_PATH"`
	UploadDir        string        `mapstructure:"UPLOAD_DIR"`
	CORSAllowed      string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB  int64         `mapstructure:"MAX_UPLOAD_MB"`
	DailyReportLimit int           `mapstructure:"DAILY_REPORT_LIMIT"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("FFMPEG_PATH", "ffmpeg")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("DAILY_REPORT_LIMIT", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
