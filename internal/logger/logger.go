package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/config"
)

// Init 构建 zap logger 并替换全局实例，之后各处通过 zap.L() 使用
func Init(cfg *config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		zc.Level = level
	}

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
