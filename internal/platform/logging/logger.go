package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger 是整个应用共用的结构化日志实例。
// 在 Init 被调用之前它不输出任何内容，方便测试直接使用各个模块。
var Logger = zerolog.Nop()

// Init 根据配置的日志级别初始化全局Logger，输出JSON到stdout
func Init(level, service string) {
	InitWithWriter(os.Stdout, level, service)
}

// InitWithWriter 与 Init 相同，但允许指定输出目标
func InitWithWriter(w io.Writer, level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}
