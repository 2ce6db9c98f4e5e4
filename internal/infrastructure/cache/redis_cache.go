package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
)

// RedisSummaryCache guarda o resumo financeiro sem período por loja no
// Redis (JSON com TTL). A invalidação é um DEL único por loja.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache constrói o cache sobre o cliente Redis.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

func summaryKey(storeID string) string {
	return "financials:" + storeID
}

// GetSummary busca o resumo da loja. Miss devolve (nil, false, nil).
func (c *RedisSummaryCache) GetSummary(ctx context.Context, storeID string) (*dto.FinancialSummaryDTO, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get summary: %w", err)
	}
	var summary dto.FinancialSummaryDTO
	if err := json.Unmarshal(raw, &summary); err != nil {
		// Payload corrompido vale como miss; a próxima escrita o substitui.
		return nil, false, nil
	}
	return &summary, true, nil
}

// SetSummary grava o resumo com TTL.
func (c *RedisSummaryCache) SetSummary(ctx context.Context, storeID string, summary *dto.FinancialSummaryDTO) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cache marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(storeID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set summary: %w", err)
	}
	return nil
}

// Invalidate remove o resumo da loja.
func (c *RedisSummaryCache) Invalidate(ctx context.Context, storeID string) error {
	if err := c.client.Del(ctx, summaryKey(storeID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate summary: %w", err)
	}
	return nil
}
