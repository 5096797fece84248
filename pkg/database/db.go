package database

import "time"

// AlbumStore 定义专辑处理状态存储接口
type AlbumStore interface {
	// AddProcessedAlbum 将专辑路径标记为已处理，返回记录 ID；重复标记会刷新处理时间
	AddProcessedAlbum(albumPath string, trackCount int) (string, error)
	// IsAlbumProcessed 检查专辑路径是否已处理
	IsAlbumProcessed(albumPath string) (bool, error)
	// ProcessedAt 返回专辑最近一次处理的时间，未处理时返回零值
	ProcessedAt(albumPath string) (time.Time, error)
	// Close 关闭数据库连接
	Close() error
}
