package lsp

import (
	"os"

	"go.uber.org/zap"
)

// newLogger 创建服务器日志记录器
//
// 通过环境变量 SEANET_LSP_DEBUG 控制调试级别；logPath 非空时日志
// 写入文件，否则写 stderr。stdout 留给 LSP 协议，绝不能写日志。
func newLogger(logPath string) (*zap.SugaredLogger, error) {
	debug := os.Getenv("SEANET_LSP_DEBUG")
	enabled := debug == "1" || debug == "true" || debug == "on"

	var cfg zap.Config
	if enabled {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if logPath != "" {
		cfg.OutputPaths = []string{logPath}
		cfg.ErrorOutputPaths = []string{logPath}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
