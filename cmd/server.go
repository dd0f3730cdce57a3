/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/api"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/container"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Makan Forms API server.
The server will listen on the configured host and port,
and provide REST API interfaces for productivity form management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.InitLogger(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 显式指定了配置文件时监听变更,日志级别支持热更新
		if configPath != "" {
			watcher := config.NewConfigWatcher(cfg, configPath)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				level, err := logrus.ParseLevel(newCfg.Log.Level)
				if err != nil {
					logger.WithError(err).Warn("Invalid log level in updated config")
					return
				}
				api.SetLoggerLevel(level)
				logger.WithField("level", newCfg.Log.Level).Info("Log level updated")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("Failed to watch config file")
			} else {
				defer watcher.Stop()
			}
		}

		// 3. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. 启动后台组件
		go ctr.Hub().Run()
		ctr.Collector().Start()
		if err := ctr.Dispatcher().ResendPending(); err != nil {
			logger.WithError(err).Warn("Failed to resend pending events")
		}

		// 5. 初始化链路追踪
		if cfg.Tracing.Enabled {
			if err := api.InitTracing("makan-forms", cfg.Env, cfg.Tracing.JaegerEndpoint); err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = api.ShutdownTracing(ctx)
			}()
		}

		// 6. 设置路由
		svcs := ctr.Services()
		router := api.SetupRoutes(cfg, ctr.DB(), ctr.Hub(), ctr.TokenIssuer(), &api.Services{
			Auth:      svcs.Auth,
			Form:      svcs.Form,
			Approval:  svcs.Approval,
			Sheet:     svcs.Sheet,
			Dashboard: svcs.Dashboard,
			Reference: svcs.Reference,
			User:      svcs.User,
		})

		// 7. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("Server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("Failed to start server")
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("Server forced to shutdown")
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.makan-forms)")
}
