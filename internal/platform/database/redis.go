package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SlpAus/khatira-board-backend/internal/platform/config"
	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

const redisPingTimeout = 3 * time.Second

// OpenRedis 初始化与Redis的连接。未配置地址时返回 nil, nil，调用方据此降级。
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		logging.Logger.Info().Msg("未配置Redis，管理员令牌吊销将只保存在进程内")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("无法连接到Redis: %w", err)
	}

	logging.Logger.Info().Str("address", cfg.Address).Msg("Redis 连接成功")
	return rdb, nil
}
