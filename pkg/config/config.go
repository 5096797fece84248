package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	WatchDir               string        // 监听目录
	OutputDir              string        // 导出文件存放目录
	DataDir                string        // SQLite数据库文件存放目录
	DBFileName             string        // SQLite数据库文件名
	DBPath                 string        // 完整的数据库文件路径
	TracklistFileName      string        // 专辑目录中的曲目列表文件名
	DurationMode           bool          // 曲目列表中的时间默认是否为时长
	TradToSim              bool          // 是否将标题繁体转换为简体
	StabilityCheckInterval time.Duration // 每次检查的间隔
	StabilityQuietDuration time.Duration // 文件在多长时间内没有变化才算稳定
	StabilityMaxWait       time.Duration // 最长等待文件稳定的时间
}

const (
	watchDir  = "/app/download"
	outputDir = "/app/tracklists"
	dataDir   = "/app/data"

	dbFileName        = "tracklist.db"
	tracklistFileName = "tracklist.txt"

	// 文件稳定性检查相关参数
	stabilityCheckInterval = 5 * time.Second
	stabilityQuietDuration = 1 * time.Minute
	stabilityMaxWait       = 12 * time.Hour
)

// Default 返回默认配置
func Default() Config {
	return Config{
		WatchDir:               watchDir,
		OutputDir:              outputDir,
		DataDir:                dataDir,
		DBFileName:             dbFileName,
		TracklistFileName:      tracklistFileName,
		TradToSim:              true,
		StabilityCheckInterval: stabilityCheckInterval,
		StabilityQuietDuration: stabilityQuietDuration,
		StabilityMaxWait:       stabilityMaxWait,
	}
}

// LoadConfig 依次从默认值、TOML 配置文件和环境变量加载配置
func LoadConfig() (*Config, error) {
	// 尝试加载 .env 文件
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("TRACKLIST_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)

	if cfg.WatchDir == "" {
		cfg.WatchDir = watchDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = outputDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBFileName == "" {
		cfg.DBFileName = dbFileName
	}
	if cfg.TracklistFileName == "" {
		cfg.TracklistFileName = tracklistFileName
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)

	// 确认目录存在
	if err := os.MkdirAll(cfg.WatchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create watch directory %s: %w", cfg.WatchDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", cfg.DataDir, err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	var raw fileConfig
	if err := toml.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	raw.apply(cfg)
	return nil
}

// fileConfig 对应 TOML 文件，时长字段使用 "5s" 这样的字符串
type fileConfig struct {
	WatchDir               *string `toml:"watch_dir"`
	OutputDir              *string `toml:"output_dir"`
	DataDir                *string `toml:"data_dir"`
	DBFileName             *string `toml:"db_file_name"`
	TracklistFileName      *string `toml:"tracklist_file_name"`
	DurationMode           *bool   `toml:"duration_mode"`
	TradToSim              *bool   `toml:"trad_to_sim"`
	StabilityCheckInterval string  `toml:"stability_check_interval"`
	StabilityQuietDuration string  `toml:"stability_quiet_duration"`
	StabilityMaxWait       string  `toml:"stability_max_wait"`
}

func (f fileConfig) apply(cfg *Config) {
	setString(&cfg.WatchDir, f.WatchDir)
	setString(&cfg.OutputDir, f.OutputDir)
	setString(&cfg.DataDir, f.DataDir)
	setString(&cfg.DBFileName, f.DBFileName)
	setString(&cfg.TracklistFileName, f.TracklistFileName)
	if f.DurationMode != nil {
		cfg.DurationMode = *f.DurationMode
	}
	if f.TradToSim != nil {
		cfg.TradToSim = *f.TradToSim
	}
	cfg.StabilityCheckInterval = parseDurationOrDefault(f.StabilityCheckInterval, cfg.StabilityCheckInterval)
	cfg.StabilityQuietDuration = parseDurationOrDefault(f.StabilityQuietDuration, cfg.StabilityQuietDuration)
	cfg.StabilityMaxWait = parseDurationOrDefault(f.StabilityMaxWait, cfg.StabilityMaxWait)
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.WatchDir, lookupEnv("WATCH_DIR"))
	setString(&cfg.OutputDir, lookupEnv("OUTPUT_DIR"))
	setString(&cfg.DataDir, lookupEnv("DATA_DIR"))
	setString(&cfg.DBFileName, lookupEnv("DB_FILE_NAME"))
	setString(&cfg.TracklistFileName, lookupEnv("TRACKLIST_FILE_NAME"))
	cfg.DurationMode = parseBoolOrDefault(os.Getenv("DURATION_MODE"), cfg.DurationMode)
	cfg.TradToSim = parseBoolOrDefault(os.Getenv("TRAD_TO_SIM"), cfg.TradToSim)
	cfg.StabilityCheckInterval = parseDurationOrDefault(os.Getenv("STABILITY_CHECK_INTERVAL"), cfg.StabilityCheckInterval)
	cfg.StabilityQuietDuration = parseDurationOrDefault(os.Getenv("STABILITY_QUIET_DURATION"), cfg.StabilityQuietDuration)
	cfg.StabilityMaxWait = parseDurationOrDefault(os.Getenv("STABILITY_MAX_WAIT"), cfg.StabilityMaxWait)
}

func lookupEnv(key string) *string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	return &v
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: Could not parse duration '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse bool '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return b
}
