package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sea-routing/model"
)

// Options 数据库连接参数 (环境变量名与 Docker 部署保持一致)
type Options struct {
	Host       string        `long:"db-host"     env:"DB_HOST"     description:"PostgreSQL host"              default:"localhost"`
	Port       int           `long:"db-port"     env:"DB_PORT"     description:"PostgreSQL port"              default:"5432"`
	User       string        `long:"db-user"     env:"DB_USER"     description:"PostgreSQL user"              default:"searoute"`
	Password   string        `long:"db-password" env:"DB_PASSWORD" description:"PostgreSQL password"          default:"searoute"`
	Name       string        `long:"db-name"     env:"DB_NAME"     description:"PostgreSQL database"          default:"searoute"`
	SSLMode    string        `long:"db-sslmode"  env:"DB_SSLMODE"  description:"PostgreSQL sslmode"           default:"disable"`
	MaxRetries int           `long:"db-retries"  env:"DB_RETRIES"  description:"Connection attempts on start" default:"30"`
	RetryWait  time.Duration `long:"db-retry-wait" env:"DB_RETRY_WAIT" description:"Wait between attempts"   default:"2s"`
	Migrate    bool          `long:"db-migrate"  env:"DB_MIGRATE"  description:"Run AutoMigrate on start"`
}

// DSN 拼接 PostgreSQL 连接串
func (o Options) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		o.Host, o.User, o.Password, o.Name, o.Port, o.SSLMode,
	)
}

// Open 连接数据库, 带重试 (Docker 启动时数据库可能还没准备好)
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	attempts := max(opts.MaxRetries, 1)
	var (
		gdb *gorm.DB
		err error
	)
	for i := 0; i < attempts; i++ {
		gdb, err = gorm.Open(postgres.Open(opts.DSN()), cfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", attempts).Msg("Waiting for database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryWait):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if opts.Migrate {
		if err := Migrate(gdb); err != nil {
			return nil, err
		}
	}

	log.Info().Str("host", opts.Host).Str("db", opts.Name).Msg("Database connected")
	return gdb, nil
}

// Migrate 自动迁移表结构
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.Country{}, &model.Location{}, &model.Turn{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
