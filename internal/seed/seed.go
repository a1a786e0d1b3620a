// Package seed 写入演示数据：3 个用户、3 个商品、5 笔待处理订单。
// 可重复执行，已存在的记录保持原样。
package seed

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/datamodels/user"
)

// Result 种子执行结果，OrdersCreated 只统计本次新建的订单
type Result struct {
	Users         int `json:"users"`
	Products      int `json:"products"`
	OrdersCreated int `json:"ordersCreated"`
}

type orderSeed struct {
	id    int64
	email string
	total float64
	items []order.Item
}

var users = []user.User{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
	{Name: "Bob Johnson", Email: "bob@example.com"},
}

var products = []product.Product{
	{
		ID:          1,
		Title:       "Laptop",
		Price:       1_200_000,
		Description: "High-performance laptop",
		Category:    "Electronics",
		Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
	},
	{
		ID:          2,
		Title:       "Smartphone",
		Price:       800_000,
		Description: "Latest smartphone model",
		Category:    "Electronics",
		Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
	},
	{
		ID:          3,
		Title:       "T-shirt",
		Price:       150_000,
		Description: "Cotton t-shirt",
		Category:    "Clothing",
		Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
	},
}

var orders = []orderSeed{
	{id: 1, email: "john@example.com", total: 1_200_000, items: []order.Item{{ProductID: 1, Quantity: 1}}},
	{id: 2, email: "john@example.com", total: 450_000, items: []order.Item{{ProductID: 3, Quantity: 3}}},
	{id: 3, email: "jane@example.com", total: 1_500_000, items: []order.Item{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 2}}},
	{id: 4, email: "jane@example.com", total: 300_000, items: []order.Item{{ProductID: 3, Quantity: 2}}},
	{id: 5, email: "bob@example.com", total: 750_000, items: []order.Item{{ProductID: 3, Quantity: 5}}},
}

// Run 依次写入用户、商品、订单
func Run(ctx context.Context, userRepo user.Repository, productRepo product.Repository, orderRepo order.Repository) (*Result, error) {
	res := &Result{}

	userIDs := make(map[string]int64, len(users))
	for i := range users {
		u := users[i]
		if err := userRepo.Upsert(ctx, &u); err != nil {
			return nil, errors.Wrapf(err, "seed user %s", u.Email)
		}
		userIDs[u.Email] = u.ID
		res.Users++
	}

	for i := range products {
		p := products[i]
		if err := productRepo.Upsert(ctx, &p); err != nil {
			return nil, errors.Wrapf(err, "seed product %d", p.ID)
		}
		res.Products++
	}

	for _, s := range orders {
		_, err := orderRepo.GetByID(ctx, s.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, errors.Wrapf(err, "seed order %d", s.id)
		}

		items := make([]order.Item, len(s.items))
		copy(items, s.items)
		o := &order.Order{
			ID:     s.id,
			UserID: userIDs[s.email],
			Total:  s.total,
			Status: order.StatusPending,
			Items:  items,
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return nil, errors.Wrapf(err, "seed order %d", s.id)
		}
		res.OrdersCreated++
	}

	zap.L().Info("database seeded",
		zap.Int("users", res.Users),
		zap.Int("products", res.Products),
		zap.Int("orders_created", res.OrdersCreated))
	return res, nil
}
