package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type CacheService interface {
	// Driver caching
	GetDriver(ctx context.Context, companyID, driverID uuid.UUID) (*models.Driver, error)
	SetDriver(ctx context.Context, companyID uuid.UUID, driver *models.Driver, ttl time.Duration) error
	DeleteDriver(ctx context.Context, companyID, driverID uuid.UUID) error

	// Pay statement caching
	GetStatement(ctx context.Context, companyID, statementID uuid.UUID) (*models.PayStatement, error)
	SetStatement(ctx context.Context, companyID uuid.UUID, statement *models.PayStatement, ttl time.Duration) error
	DeleteStatement(ctx context.Context, companyID, statementID uuid.UUID) error

	// Cache invalidation
	InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func driverKey(companyID, driverID uuid.UUID) string {
	return fmt.Sprintf("neopay:driver:%s:%s", companyID.String(), driverID.String())
}

func statementKey(companyID, statementID uuid.UUID) string {
	return fmt.Sprintf("neopay:statement:%s:%s", companyID.String(), statementID.String())
}

func (r *redisCacheService) GetDriver(ctx context.Context, companyID, driverID uuid.UUID) (*models.Driver, error) {
	data, err := r.client.Get(ctx, driverKey(companyID, driverID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var driver models.Driver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *redisCacheService) SetDriver(ctx context.Context, companyID uuid.UUID, driver *models.Driver, ttl time.Duration) error {
	data, err := json.Marshal(driver)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, driverKey(companyID, driver.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteDriver(ctx context.Context, companyID, driverID uuid.UUID) error {
	return r.client.Del(ctx, driverKey(companyID, driverID)).Err()
}

func (r *redisCacheService) GetStatement(ctx context.Context, companyID, statementID uuid.UUID) (*models.PayStatement, error) {
	data, err := r.client.Get(ctx, statementKey(companyID, statementID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var statement models.PayStatement
	if err := json.Unmarshal(data, &statement); err != nil {
		return nil, err
	}
	return &statement, nil
}

func (r *redisCacheService) SetStatement(ctx context.Context, companyID uuid.UUID, statement *models.PayStatement, ttl time.Duration) error {
	data, err := json.Marshal(statement)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, statementKey(companyID, statement.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteStatement(ctx context.Context, companyID, statementID uuid.UUID) error {
	return r.client.Del(ctx, statementKey(companyID, statementID)).Err()
}

func (r *redisCacheService) InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error {
	pattern := fmt.Sprintf("neopay:*:%s:*", companyID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
