package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"boardsuite/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Report caching
	GetMonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error)
	SetMonthlyReport(ctx context.Context, year, month int, report *models.MonthlyReport, ttl time.Duration) error
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	SetDashboardStats(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error

	// Refresh token storage (hashed token -> user id)
	SetRefreshToken(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenHash string) (string, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func reportKey(year, month int) string {
	return fmt.Sprintf("report:%04d-%02d", year, month)
}

func (s *redisCacheService) GetMonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	data, err := s.client.Get(ctx, reportKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report := &models.MonthlyReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *redisCacheService) SetMonthlyReport(ctx context.Context, year, month int, report *models.MonthlyReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reportKey(year, month), data, ttl).Err()
}

func (s *redisCacheService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	data, err := s.client.Get(ctx, "dashboard:stats").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *redisCacheService) SetDashboardStats(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "dashboard:stats", data, ttl).Err()
}

func (s *redisCacheService) SetRefreshToken(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, "refresh_token:"+tokenHash, userID, ttl).Err()
}

func (s *redisCacheService) GetRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	val, err := s.client.Get(ctx, "refresh_token:"+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *redisCacheService) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, "refresh_token:"+tokenHash).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
