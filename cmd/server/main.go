package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/config"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "GYS intranet portal server",
	Long: `portal serves the intranet portal: block pages, navigation menus, news,
events, the photo gallery and the employee directory.

Configuration is read from config.yaml (or --config) and PORTAL_* environment
variables. Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(serveCmd, seedCmd, createUserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap 读取配置、创建日志并打开数据库，供所有子命令复用。
func bootstrap() (config.AppConfig, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		_ = logger.Sync()
		return cfg, nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return cfg, logger, gdb, nil
}
