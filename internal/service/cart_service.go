package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/cart"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/discount"
)

// DefaultSessionID 调用方未提供会话标识时使用
const DefaultSessionID = "default-session"

// CartService 按会话维护购物车明细，重复加购同一商品时累加数量
type CartService struct {
	carts          cart.Repository
	products       product.Repository
	defaultSession string
}

func NewCartService(carts cart.Repository, products product.Repository, defaultSession string) *CartService {
	if defaultSession == "" {
		defaultSession = DefaultSessionID
	}
	return &CartService{
		carts:          carts,
		products:       products,
		defaultSession: defaultSession,
	}
}

func (s *CartService) sessionOrDefault(sessionID string) string {
	if sid := strings.TrimSpace(sessionID); sid != "" {
		return sid
	}
	return s.defaultSession
}

// AddItem 加购。created 为 true 表示新建了明细，false 表示累加到已有明细。
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*cart.LineWithProduct, bool, error) {
	if productID <= 0 {
		return nil, false, apperr.InvalidArgument("productId is required")
	}
	if quantity <= 0 {
		return nil, false, apperr.InvalidArgument("quantity must be a positive integer, got %d", quantity)
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, false, apperr.NotFound("product %d", productID)
		}
		return nil, false, err
	}

	line, created, err := s.carts.AddQuantity(ctx, s.sessionOrDefault(sessionID), productID, quantity)
	if err != nil {
		return nil, false, err
	}
	GetMonitor().RecordCartAdd(created)

	return &cart.LineWithProduct{Line: *line, Product: p}, created, nil
}

// ListItems 返回会话内全部明细及商品信息；商品已不存在的明细保留，Product 为 nil
func (s *CartService) ListItems(ctx context.Context, sessionID string) ([]*cart.LineWithProduct, error) {
	sid := s.sessionOrDefault(sessionID)
	lines, err := s.carts.ListBySession(ctx, sid)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; !ok {
			seen[l.ProductID] = struct{}{}
			ids = append(ids, l.ProductID)
		}
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]*cart.LineWithProduct, 0, len(lines))
	for _, l := range lines {
		p := byID[l.ProductID]
		if p == nil {
			zap.L().Warn("cart line references missing product",
				zap.String("session_id", sid),
				zap.Int64("line_id", l.ID),
				zap.Int64("product_id", l.ProductID))
		}
		out = append(out, &cart.LineWithProduct{Line: *l, Product: p})
	}
	return out, nil
}

// Quote 购物车结算预览
type Quote struct {
	SessionID       string  `json:"sessionId"`
	Lines           int     `json:"lines"`
	Items           int     `json:"items"`
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent"`
	FinalAmount     float64 `json:"finalAmount"`
}

// Quote 汇总会话内可结算商品并计算折扣，商品已下架的明细不计价
func (s *CartService) Quote(ctx context.Context, sessionID string, isMember bool, promoCode string) (*Quote, error) {
	items, err := s.ListItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	q := &Quote{SessionID: s.sessionOrDefault(sessionID)}
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		q.Lines++
		q.Items += it.Quantity
		q.Subtotal += it.Product.Price * float64(it.Quantity)
	}
	q.DiscountPercent = discount.Percent(q.Subtotal, isMember, promoCode)
	q.FinalAmount = discount.Apply(q.Subtotal, q.DiscountPercent)
	return q, nil
}
