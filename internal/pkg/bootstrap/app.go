// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"orderflow/internal/pkg/logger"
)

// App 包含了启动一个服务进程所需的全部信息。
type App struct {
	ServiceName string
	Port        int
	// RegisterHandlers 允许每个服务注册自己独特的 HTTP 路由。
	RegisterHandlers func(mux *http.ServeMux)
	// BackgroundTasks 是与 HTTP 服务并行运行的长生命周期任务（如消费循环）。
	// 任务应在 ctx 取消后尽快返回；任一任务出错会触发整个进程关停。
	BackgroundTasks []func(ctx context.Context) error
}

// Run 封装了所有服务共用的启动与优雅关停逻辑。
// HTTP 服务与后台任务在同一进程内并发运行，互不阻塞；
// 收到 SIGINT/SIGTERM 后取消根上下文并在限定时间内关停 HTTP 服务。
func Run(app App) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	if app.RegisterHandlers != nil {
		app.RegisterHandlers(mux)
	}
	server := &http.Server{Addr: ":" + strconv.Itoa(app.Port), Handler: mux}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger().Info().
			Str("service", app.ServiceName).
			Int("port", app.Port).
			Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	for _, task := range app.BackgroundTasks {
		task := task
		g.Go(func() error {
			return task(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Logger().Info().Str("service", app.ServiceName).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
