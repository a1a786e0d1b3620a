package server

import (
	"github.com/kataras/iris/v12"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/discount"
	"github.com/example/storefront/internal/middleware"
	"github.com/example/storefront/internal/server/response"
	webcontrollers "github.com/example/storefront/web/controllers"
)

// RegisterRoutes 注册前台 HTTP 路由：商品目录、购物车、折扣计算
func RegisterRoutes(app *iris.Application, svc *Services, cfg *config.CartConfig) {
	app.Use(middleware.AccessLog())

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		_ = ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 运行时统计
	api.Get("/stats", func(ctx iris.Context) {
		response.OK(ctx, iris.StatusOK, svc.Monitor.GetStats())
	})

	// 折扣计算
	api.Post("/discount", func(ctx iris.Context) {
		var req struct {
			Total     float64 `json:"total"`
			IsMember  bool    `json:"isMember"`
			PromoCode string  `json:"promoCode"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			response.BadRequest(ctx, "invalid request body: "+err.Error())
			return
		}
		if req.Total < 0 {
			response.BadRequest(ctx, "total must not be negative")
			return
		}
		pct := discount.Percent(req.Total, req.IsMember, req.PromoCode)
		response.OK(ctx, iris.StatusOK, iris.Map{
			"finalAmount":     discount.Apply(req.Total, pct),
			"discountPercent": pct,
		})
	})

	// 商品目录（MVC）
	webcontrollers.Register(app.Party("/products"), svc.Products)

	// 购物车
	cartParty := app.Party("/cart")

	cartParty.Post("/", middleware.RateLimit(cfg.RateLimitCapacity, cfg.RateLimitRefill), func(ctx iris.Context) {
		var req struct {
			ProductID int64  `json:"productId"`
			Quantity  int    `json:"quantity"`
			SessionID string `json:"sessionId"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			response.BadRequest(ctx, "invalid request body: "+err.Error())
			return
		}
		item, created, err := svc.Cart.AddItem(ctx.Request().Context(), req.SessionID, req.ProductID, req.Quantity)
		if err != nil {
			response.Error(ctx, err)
			return
		}
		status := iris.StatusOK
		if created {
			status = iris.StatusCreated
		}
		response.OK(ctx, status, item)
	})

	cartParty.Get("/", func(ctx iris.Context) {
		items, err := svc.Cart.ListItems(ctx.Request().Context(), ctx.URLParam("sessionId"))
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, items)
	})

	// 结算预览：/cart/quote?sessionId=&member=true&promoCode=DISKON20
	cartParty.Get("/quote", func(ctx iris.Context) {
		quote, err := svc.Cart.Quote(ctx.Request().Context(),
			ctx.URLParam("sessionId"),
			ctx.URLParamBoolDefault("member", false),
			ctx.URLParam("promoCode"))
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, quote)
	})
}
