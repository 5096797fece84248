package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/yleoer/tracklist/pkg/config"
	"github.com/yleoer/tracklist/pkg/converter"
	"github.com/yleoer/tracklist/pkg/database"
	"github.com/yleoer/tracklist/pkg/exporter"
	"github.com/yleoer/tracklist/pkg/scanner"
	"github.com/yleoer/tracklist/pkg/scheduler"
)

const lockFileName = "tracklist.lock"

func main() {
	// 1. 初始化日志器
	logger := log.New(os.Stdout, "[Tracklist] ", log.LstdFlags|log.Lshortfile)
	logger.Println("Starting Tracklist processor...")

	// 2. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Printf("Configuration loaded: WatchDir=%s, OutputDir=%s, DataDir=%s, DBPath=%s, DurationMode=%v",
		cfg.WatchDir, cfg.OutputDir, cfg.DataDir, cfg.DBPath, cfg.DurationMode)

	// 3. 同一个数据目录只允许一个实例运行
	lock := flock.New(filepath.Join(cfg.DataDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		logger.Fatalf("Failed to acquire lock %s: %v", lock.Path(), err)
	}
	if !locked {
		logger.Fatalf("Another instance is already running (lock %s).", lock.Path())
	}
	defer lock.Unlock()

	// 4. 初始化所有依赖服务
	// 4.1 繁简体转换器
	textConverter := converter.NewNopConverter()
	if cfg.TradToSim {
		textConverter, err = converter.NewOpenCCConverter(logger)
		if err != nil {
			logger.Fatalf("Failed to initialize OpenCC converter: %v", err)
		}
	}
	// 4.2 数据库存储
	dbStore, err := database.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()
	// 4.3 专辑扫描器和导出器
	albumScanner := scanner.NewAlbumScanner(cfg.TracklistFileName, cfg.DurationMode, textConverter, logger)
	albumExporter := exporter.NewExporter(logger)

	// 5. 初始化任务调度器并执行初始扫描
	taskScheduler := scheduler.NewTaskScheduler(cfg, dbStore, albumScanner, albumExporter, logger)
	taskScheduler.InitialScan(cfg.WatchDir)

	// 6. 监听目录直到收到退出信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Println("Application is running. Press Ctrl+C to exit.")
	if err := taskScheduler.Watch(ctx, cfg.WatchDir); err != nil {
		logger.Printf("ERROR: %v", err)
		return
	}
	logger.Println("Shutting down.")
}
