package log

import (
	"orb/firescout/pkg/config"

	"go.uber.org/zap"
)

func Init(
	cfg config.LogConfig,
) {
	conf := zap.NewDevelopmentConfig()
	conf.Level = zap.NewAtomicLevelAt(cfg.Level)
	conf.Encoding = cfg.Encoding
	zap.ReplaceGlobals(zap.Must(conf.Build()))
}
