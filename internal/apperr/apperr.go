// Package apperr 定义服务层对外暴露的错误类别。
// 调用方用 errors.Is 判断类别，再映射为 HTTP 状态码等。
package apperr

import (
	"net/http"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrInvalidArgument 入参缺失或非法，不可重试
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound 引用的商品/用户等不存在
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable 存储层未响应或返回意外错误
	ErrStoreUnavailable = errors.New("store unavailable")
)

type storeError struct {
	cause error
}

func (e *storeError) Error() string { return "store unavailable: " + e.cause.Error() }

func (e *storeError) Unwrap() error { return e.cause }

func (e *storeError) Is(target error) bool { return target == ErrStoreUnavailable }

// Store 将数据库驱动错误归类为 ErrStoreUnavailable，原始错误仍可通过 Unwrap 取得。
// 记录不存在会被翻译为 ErrNotFound。
func Store(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithStack(ErrNotFound)
	}
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &storeError{cause: err}
}

// InvalidArgument 返回带说明的 ErrInvalidArgument
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// NotFound 返回带说明的 ErrNotFound
func NotFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// HTTPStatus 将错误类别映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
