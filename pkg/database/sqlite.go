package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// sqliteStore 是 AlbumStore 接口的 SQLite 实现
type sqliteStore struct {
	db     *sql.DB
	logger *log.Logger
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS processed_albums (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		track_count INTEGER NOT NULL DEFAULT 0,
		processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

// NewSQLiteStore 初始化 SQLite 数据库并返回 AlbumStore 接口实例
func NewSQLiteStore(dataSourceName string, logger *log.Logger) (AlbumStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create processed_albums table: %w", err)
	}
	logger.Printf("SQLite database initialized at: %s", dataSourceName)
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close 关闭数据库连接
func (s *sqliteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.logger.Println("SQLite database connection closed.")
		return err
	}
	return nil
}

// AddProcessedAlbum 将专辑路径标记为已处理，重复标记时更新曲目数并返回已有 ID
func (s *sqliteStore) AddProcessedAlbum(albumPath string, trackCount int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO processed_albums (id, path, track_count, processed_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET track_count = excluded.track_count, processed_at = excluded.processed_at`,
		id, albumPath, trackCount, time.Now())
	if err != nil {
		s.logger.Printf("ERROR: Failed to add album %s to processed_albums: %v", albumPath, err)
		return "", fmt.Errorf("failed to add processed album %s: %w", albumPath, err)
	}
	if err := s.db.QueryRow("SELECT id FROM processed_albums WHERE path = ?", albumPath).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read processed album id for %s: %w", albumPath, err)
	}
	s.logger.Printf("Album %s marked as processed (%d tracks, id %s).", albumPath, trackCount, id)
	return id, nil
}

// ProcessedAt 返回专辑最近一次处理的时间，未处理时返回零值
func (s *sqliteStore) ProcessedAt(albumPath string) (time.Time, error) {
	var processedAt time.Time
	err := s.db.QueryRow("SELECT processed_at FROM processed_albums WHERE path = ?", albumPath).Scan(&processedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read processed time for %s: %w", albumPath, err)
	}
	return processedAt, nil
}

// IsAlbumProcessed 检查专辑路径是否已处理
func (s *sqliteStore) IsAlbumProcessed(albumPath string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM processed_albums WHERE path = ?", albumPath).Scan(&count)
	if err != nil {
		s.logger.Printf("ERROR: Failed to check if album %s is processed: %v", albumPath, err)
		return false, fmt.Errorf("failed to check processed status for %s: %w", albumPath, err)
	}
	return count > 0, nil
}
