package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DBOptions describes how to reach MySQL. DSN wins over the individual fields.
type DBOptions struct {
	DSN      string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	// Debug logs every SQL statement.
	Debug bool
}

// BuildDSN returns the MySQL DSN for the options.
func (o DBOptions) BuildDSN() (string, error) {
	if o.DSN != "" {
		return o.DSN, nil
	}
	if o.User == "" {
		return "", fmt.Errorf("database user must be set (DB_USER or DATABASE_DSN)")
	}
	host := o.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := o.Port
	if port == "" {
		port = "3306"
	}
	name := o.Name
	if name == "" {
		name = "yen_platform"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		o.User, o.Password, host, port, name), nil
}

// InitDB opens the MySQL connection pool.
func InitDB(opts DBOptions) (*gorm.DB, error) {
	dsn, err := opts.BuildDSN()
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if opts.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping MySQL: %w", err)
	}
	logrus.WithField("host", opts.Host).Info("MySQL connected")
	return db, nil
}

// InitRedis creates the Redis client and checks it responds.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	logrus.WithField("addr", addr).Info("Redis connected")
	return client, nil
}
