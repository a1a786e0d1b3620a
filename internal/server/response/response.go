// Package response 统一 JSON 响应格式：成功 {"code":0,"data":...}，失败 {"code":N,"msg":...}
package response

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/service"
)

// OK 写入成功响应
func OK(ctx iris.Context, status int, data interface{}) {
	ctx.StatusCode(status)
	_ = ctx.JSON(iris.Map{"code": 0, "data": data})
}

// BadRequest 请求体无法解析等情况
func BadRequest(ctx iris.Context, msg string) {
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": iris.StatusBadRequest, "msg": msg})
}

// Error 按错误类别写入失败响应。5xx 记录日志并计入监控，且不向客户端暴露内部细节。
func Error(ctx iris.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status >= iris.StatusInternalServerError {
		service.GetMonitor().RecordStoreError()
		zap.L().Error("request failed",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		msg = "internal error"
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": msg})
}
