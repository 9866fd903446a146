package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// New 根据LogConfig创建zap日志器，并替换全局logger（zap.L()）
// 返回的cleanup用于退出前刷新缓冲
func New(cfg *config.Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Log.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Log.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	ws, closeOutput, err := openOutput(cfg.Log.Output)
	if err != nil {
		return nil, nil, err
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Log.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}

	log := zap.New(zapcore.NewCore(encoder, ws, level), opts...)
	restore := zap.ReplaceGlobals(log)

	cleanup := func() {
		_ = log.Sync()
		restore()
		closeOutput()
	}
	return log, cleanup, nil
}

func openOutput(output string) (zapcore.WriteSyncer, func(), error) {
	switch output {
	case "", "stdout":
		return zapcore.Lock(os.Stdout), func() {}, nil
	case "stderr":
		return zapcore.Lock(os.Stderr), func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return zapcore.AddSync(f), func() { _ = f.Close() }, nil
}
