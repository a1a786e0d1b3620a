package redis

import (
	"context"
	"encoding/json"
	"time"

	radix "github.com/mediocregopher/radix/v3"
	"github.com/pkg/errors"

	"github.com/example/storefront/internal/datamodels/product"
)

const productListKey = "storefront:products:all"

// ProductCache 以 JSON 形式缓存完整商品列表
type ProductCache struct {
	redis radix.Client
	ttl   time.Duration
}

// NewProductCache 创建商品缓存，ttl 非正数时默认 5 分钟
func NewProductCache(redis radix.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{redis: redis, ttl: ttl}
}

func (c *ProductCache) GetAll(ctx context.Context) ([]*product.Product, bool, error) {
	var raw []byte
	mn := radix.MaybeNil{Rcv: &raw}
	if err := c.redis.Do(radix.Cmd(&mn, "GET", productListKey)); err != nil {
		return nil, false, errors.Wrap(err, "redis get products")
	}
	if mn.Nil {
		return nil, false, nil
	}
	var list []*product.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		// 数据损坏，清理后走数据库
		_ = c.redis.Do(radix.Cmd(nil, "DEL", productListKey))
		return nil, false, nil
	}
	return list, true, nil
}

func (c *ProductCache) SetAll(ctx context.Context, list []*product.Product) error {
	body, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	seconds := int64(c.ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	if err := c.redis.Do(radix.FlatCmd(nil, "SETEX", productListKey, seconds, body)); err != nil {
		return errors.Wrap(err, "redis setex products")
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Do(radix.Cmd(nil, "DEL", productListKey)); err != nil {
		return errors.Wrap(err, "redis del products")
	}
	return nil
}
