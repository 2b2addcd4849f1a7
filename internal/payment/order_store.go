package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/redis/go-redis/v9"
)

const orderKeyPrefix = "payment:order:"

// OrderStore 待付款订单存储
//
// 订单建立到付款回调之间的凭据放 redis 并设过期时间，
// 进程重启或多实例部署都不丢单
type OrderStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOrderStore 创建订单存储
func NewOrderStore(rdb *redis.Client, ttlSeconds int) *OrderStore {
	if ttlSeconds <= 0 {
		ttlSeconds = 1800
	}
	return &OrderStore{rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

// Save 暂存订单，超过 TTL 自动失效
func (s *OrderStore) Save(ctx context.Context, order *Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if err := s.rdb.Set(ctx, orderKeyPrefix+order.MerchantOrderNo, data, s.ttl).Err(); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// Take 取出并删除订单，一笔订单只能兑现一次
func (s *OrderStore) Take(ctx context.Context, merchantOrderNo string) (*Order, error) {
	data, err := s.rdb.GetDel(ctx, orderKeyPrefix+merchantOrderNo).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("查無該訂單")
		}
		return nil, apperr.Unexpected(err)
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return &order, nil
}
