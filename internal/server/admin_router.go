package server

import (
	"github.com/kataras/iris/v12"

	"github.com/example/storefront/internal/server/response"
)

// RegisterAdminRoutes 注册订单分析相关的管理接口
func RegisterAdminRoutes(app *iris.Application, svc *Services) {
	api := app.Party("/api")

	// ---------- 用户订单分析 ----------

	// 存在单笔金额超过 1,000,000 订单的用户
	api.Get("/users/large-orders", func(ctx iris.Context) {
		list, err := svc.Analytics.UsersWithLargeOrders(ctx.Request().Context())
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, list)
	})

	// 每个用户的平均订单金额，无订单的用户为 0
	api.Get("/users/average-orders", func(ctx iris.Context) {
		list, err := svc.Analytics.AverageOrderPerUser(ctx.Request().Context())
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, list)
	})

	// 单个用户的订单明细与汇总
	api.Get("/users/{id:int64}/orders", func(ctx iris.Context) {
		id := ctx.Params().GetInt64Default("id", 0)
		summary, err := svc.Analytics.UserOrders(ctx.Request().Context(), id)
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, summary)
	})

	// ---------- 订单状态 ----------

	// 将金额超过 500,000 的订单批量置为 completed
	api.Post("/orders/update-status", func(ctx iris.Context) {
		n, err := svc.Analytics.PromoteCompletedOrders(ctx.Request().Context())
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, iris.StatusOK, iris.Map{"updatedCount": n})
	})
}
