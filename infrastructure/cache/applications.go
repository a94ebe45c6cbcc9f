package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	applicationsKeyPrefix = "mediation:applications:"
	DefaultTTL            = time.Hour
)

// ApplicationsCache guarda a lista de aplicativos da rede de anúncios por usuário.
// Falhas do cache nunca impedem a consulta à fonte.
type ApplicationsCache interface {
	Get(ctx context.Context, userID string) ([]*domain.Application, bool)
	Set(ctx context.Context, userID string, applications []*domain.Application)
	Invalidate(ctx context.Context, userID string)
}

type redisApplicationsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewApplicationsCache retorna o cache em Redis quando configurado, ou um cache que nunca guarda nada
func NewApplicationsCache(ctx context.Context, cfg config.Redis) (ApplicationsCache, error) {
	if !cfg.Enabled() {
		logrus.Info("Cache de aplicativos desabilitado (REDIS_ADDR vazio)")
		return NoopApplicationsCache{}, nil
	}

	client := NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar no redis %s: %w", cfg.Addr, err)
	}

	logrus.WithField("addr", cfg.Addr).Info("Cache de aplicativos em Redis habilitado")
	return NewRedisApplicationsCache(client, cfg.ApplicationsCacheTTL), nil
}

func NewRedisApplicationsCache(client redis.Cmdable, ttl time.Duration) ApplicationsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &redisApplicationsCache{
		client: client,
		ttl:    ttl,
	}
}

func applicationsKey(userID string) string {
	return applicationsKeyPrefix + userID
}

func (c *redisApplicationsCache) Get(ctx context.Context, userID string) ([]*domain.Application, bool) {
	data, err := c.client.Get(ctx, applicationsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("cache: erro ao ler aplicativos")
		}
		return nil, false
	}

	var applications []*domain.Application
	if err := json.Unmarshal(data, &applications); err != nil {
		logrus.WithField("user_id", userID).Warn("cache: aplicativos corrompidos, ignorando")
		return nil, false
	}

	return applications, true
}

func (c *redisApplicationsCache) Set(ctx context.Context, userID string, applications []*domain.Application) {
	data, err := json.Marshal(applications)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, applicationsKey(userID), data, c.ttl).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("cache: erro ao gravar aplicativos")
	}
}

func (c *redisApplicationsCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, applicationsKey(userID)).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("cache: erro ao invalidar aplicativos")
	}
}

// NoopApplicationsCache é usado quando o Redis não está configurado
type NoopApplicationsCache struct{}

func (NoopApplicationsCache) Get(context.Context, string) ([]*domain.Application, bool) {
	return nil, false
}

func (NoopApplicationsCache) Set(context.Context, string, []*domain.Application) {}

func (NoopApplicationsCache) Invalidate(context.Context, string) {}
