package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

const httpTimeout = 15 * time.Second

type closer struct {
	name  string
	close func() error
}

// Coordinator 负责编排应用程序的优雅停机流程：
// 先关闭HTTP服务器，再按注册顺序关闭各项资源。
type Coordinator struct {
	closers []closer
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Register 登记一个在HTTP服务器关闭后需要释放的资源
func (c *Coordinator) Register(name string, fn func() error) {
	c.closers = append(c.closers, closer{name: name, close: fn})
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// 阻塞直到接收到停机信号
	sig := <-sigChan
	logging.Logger.Info().Str("signal", sig.String()).Msg("收到关闭信号，开始优雅停机...")

	c.Shutdown(server, httpTimeout)
}

// Shutdown 关闭HTTP服务器，允许正在进行的请求在timeout内完成，然后释放资源
func (c *Coordinator) Shutdown(server *http.Server, timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error().Err(err).Msg("Gin服务器关闭错误")
	} else {
		logging.Logger.Info().Msg("Gin服务器已关闭。")
	}

	for _, cl := range c.closers {
		if err := cl.close(); err != nil {
			logging.Logger.Error().Err(err).Str("resource", cl.name).Msg("资源关闭失败")
			continue
		}
		logging.Logger.Info().Str("resource", cl.name).Msg("资源已关闭")
	}

	logging.Logger.Info().Msg("优雅停机完成。")
}
