package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/product"
)

// ProductFilter 商品列表筛选条件
type ProductFilter struct {
	// Query 按标题模糊匹配，不区分大小写
	Query string
	// Category 为空或 all 表示全部分类
	Category string
}

type ProductService struct {
	repo  product.Repository
	cache product.Cache
	group singleflight.Group
}

// NewProductService cache 可以为 nil，此时每次都查库
func NewProductService(repo product.Repository, cache product.Cache) *ProductService {
	return &ProductService{repo: repo, cache: cache}
}

// List 查询商品列表，支持分类筛选与关键字搜索
func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]*product.Product, error) {
	var list []*product.Product
	var err error
	if f.Category != "" && f.Category != "all" {
		list, err = s.repo.ListByCategory(ctx, f.Category)
	} else {
		list, err = s.listAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	// 带关键字时在内存中按标题过滤
	if kw := strings.ToLower(strings.TrimSpace(f.Query)); kw != "" {
		filtered := make([]*product.Product, 0, len(list))
		for _, p := range list {
			if strings.Contains(strings.ToLower(p.Title), kw) {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	return list, nil
}

func (s *ProductService) listAll(ctx context.Context) ([]*product.Product, error) {
	if s.cache == nil {
		return s.repo.ListAll(ctx)
	}

	list, hit, err := s.cache.GetAll(ctx)
	switch {
	case err != nil:
		zap.L().Warn("product cache read failed", zap.Error(err))
		GetMonitor().RecordCacheError()
	case hit:
		GetMonitor().RecordCacheLookup(true)
		return list, nil
	}
	GetMonitor().RecordCacheLookup(false)

	// 并发未命中时只查一次库。共享查询不跟随首个调用方的 ctx 取消，
	// 各调用方只在自己的 ctx 结束时提前返回。
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("all", func() (interface{}, error) {
		list, err := s.repo.ListAll(shared)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetAll(shared, list); err != nil {
			zap.L().Warn("product cache write failed", zap.Error(err))
			GetMonitor().RecordCacheError()
		}
		return list, nil
	})

	var v interface{}
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "list products")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		v = res.Val
	}
	return v.([]*product.Product), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*product.Product, error) {
	if id <= 0 {
		return nil, apperr.InvalidArgument("invalid product id %d", id)
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "product %d", id)
	}
	return p, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// InvalidateCache 商品数据变更（如导入种子数据）后清理缓存
func (s *ProductService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}
