package config

import (
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"newsdesk/global"
)

func initRedis() {
	RedisConf := AppConfig.Redis
	if RedisConf.Addr == "" {
		logrus.Warn("Redis not configured, aggregate caching disabled")
		return
	}

	RedisClient := redis.NewClient(&redis.Options{
		Addr:     RedisConf.Addr,
		Password: RedisConf.Password,
		DB:       RedisConf.DB,
	})

	if _, err := RedisClient.Ping(RedisClient.Context()).Result(); err != nil {
		logrus.Warnf("Redis ping failed, aggregate caching disabled: %v", err)
		return
	}

	global.RedisDB = RedisClient
}
