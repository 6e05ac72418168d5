package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muhammadheryan/store/model"
	goredis "github.com/redis/go-redis/v9"
)

// Repository caches product rows by id. A nil client disables caching:
// reads miss and writes are no-ops.
type Repository interface {
	GetProduct(ctx context.Context, id int64) (*model.ProductEntity, error)
	SetProduct(ctx context.Context, product *model.ProductEntity) error
	DeleteProduct(ctx context.Context, id int64) error
}

type redis struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client, ttl time.Duration) Repository {
	return &redis{client: client, ttl: ttl}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns nil without error on a cache miss.
func (r *redis) GetProduct(ctx context.Context, id int64) (*model.ProductEntity, error) {
	if r.client == nil {
		return nil, nil
	}
	val, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product model.ProductEntity
	if err := json.Unmarshal(val, &product); err != nil {
		return nil, fmt.Errorf("decode cached product %d: %w", id, err)
	}
	return &product, nil
}

// SetProduct stores the product with the configured time-to-live
func (r *redis) SetProduct(ctx context.Context, product *model.ProductEntity) error {
	if r.client == nil {
		return nil
	}
	body, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(product.ID), body, r.ttl).Err()
}

func (r *redis) DeleteProduct(ctx context.Context, id int64) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, productKey(id)).Err()
}
