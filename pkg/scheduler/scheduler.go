package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yleoer/tracklist/pkg/album"
	"github.com/yleoer/tracklist/pkg/config"
	"github.com/yleoer/tracklist/pkg/database"
	"github.com/yleoer/tracklist/pkg/scanner"
	"github.com/yleoer/tracklist/pkg/util"
)

// AlbumScanner 解析专辑目录
type AlbumScanner interface {
	ScanAlbumDirectory(rootPath string) (*album.Album, error)
}

// AlbumExporter 导出解析结果
type AlbumExporter interface {
	ExportAlbum(a *album.Album, targetDir string) ([]string, error)
}

// TaskScheduler 负责调度专辑扫描和导出任务
type TaskScheduler struct {
	cfg               *config.Config
	dbStore           database.AlbumStore
	albumScanner      AlbumScanner
	albumExporter     AlbumExporter
	logger            *log.Logger
	scanMutex         sync.Mutex // 保证同一时间只处理一个目录
	pendingScans      map[string]*time.Timer
	pendingScansMutex sync.Mutex
}

// NewTaskScheduler 创建一个新的 TaskScheduler 实例
func NewTaskScheduler(
	cfg *config.Config,
	dbStore database.AlbumStore,
	albumScanner AlbumScanner,
	albumExporter AlbumExporter,
	logger *log.Logger,
) *TaskScheduler {
	return &TaskScheduler{
		cfg:           cfg,
		dbStore:       dbStore,
		albumScanner:  albumScanner,
		albumExporter: albumExporter,
		logger:        logger,
		pendingScans:  make(map[string]*time.Timer),
	}
}

// InitialScan 对监听目录进行初始扫描，为未处理的专辑目录安排扫描
func (ts *TaskScheduler) InitialScan(root string) {
	ts.logger.Println("Performing initial scan for unprocessed albums in watch directory...")
	entries, err := os.ReadDir(root)
	if err != nil {
		ts.logger.Printf("ERROR: Error reading watch directory %s for initial scan: %v", root, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		albumDir := filepath.Join(root, entry.Name())
		if !ts.needsExport(albumDir) {
			ts.logger.Printf("  -> Album directory %s already processed. Skipping.", albumDir)
			continue
		}
		ts.logger.Printf("  -> Found unprocessed album directory: %s. Scheduling scan.", albumDir)
		ts.TriggerScan(albumDir)
	}
	ts.logger.Println("Initial scan completed.")
}

// TriggerScan 将一个目录添加到延迟扫描队列，重复触发会重置计时器
func (ts *TaskScheduler) TriggerScan(dirPath string) {
	ts.pendingScansMutex.Lock()
	defer ts.pendingScansMutex.Unlock()
	if timer, ok := ts.pendingScans[dirPath]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(ts.cfg.StabilityCheckInterval, func() {
		ts.performScan(dirPath)
		ts.pendingScansMutex.Lock()
		if ts.pendingScans[dirPath] == timer {
			delete(ts.pendingScans, dirPath)
		}
		ts.pendingScansMutex.Unlock()
	})
	ts.pendingScans[dirPath] = timer
	ts.logger.Printf("Scheduled scan for %s in %v", dirPath, ts.cfg.StabilityCheckInterval)
}

// Pending 返回等待扫描的目录数量
func (ts *TaskScheduler) Pending() int {
	ts.pendingScansMutex.Lock()
	defer ts.pendingScansMutex.Unlock()
	return len(ts.pendingScans)
}

// Stop 取消所有尚未开始的扫描
func (ts *TaskScheduler) Stop() {
	ts.pendingScansMutex.Lock()
	defer ts.pendingScansMutex.Unlock()
	for dir, timer := range ts.pendingScans {
		timer.Stop()
		delete(ts.pendingScans, dir)
	}
}

// Watch 监听根目录，只关注一级子目录（专辑目录）的变化，直到 ctx 结束
func (ts *TaskScheduler) Watch(ctx context.Context, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error adding watch root %s: %w", root, err)
	}
	// 已存在的专辑目录也需要监听，才能感知其中文件的变化
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				ts.addAlbumWatch(watcher, filepath.Join(root, entry.Name()))
			}
		}
	}
	ts.logger.Printf("Monitoring watch directory %s for album directories...", root)

	for {
		select {
		case <-ctx.Done():
			ts.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			ts.handleEvent(watcher, root, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ts.logger.Printf("ERROR: Watcher error: %v", err)
		}
	}
}

func (ts *TaskScheduler) addAlbumWatch(watcher *fsnotify.Watcher, dir string) {
	if err := watcher.Add(dir); err != nil {
		ts.logger.Printf("ERROR: Error adding album directory %s to watcher: %v", dir, err)
	}
}

func (ts *TaskScheduler) handleEvent(watcher *fsnotify.Watcher, root string, event fsnotify.Event) {
	ts.logger.Printf("Watcher event: %s, on %s", event.Op.String(), event.Name)

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == root && util.IsDirectory(event.Name) {
		ts.logger.Printf("  -> New album directory created: %s. Scheduling scan.", event.Name)
		ts.addAlbumWatch(watcher, event.Name)
		ts.TriggerScan(event.Name)
		return
	}

	albumDir := albumDirForEvent(root, event.Name)
	if albumDir == "" {
		ts.logger.Printf("  -> Event %s not in an album directory. Ignoring.", event.Name)
		return
	}
	if albumDir != event.Name && !util.IsRelevantAlbumFile(event.Name) {
		return
	}
	ts.logger.Printf("  -> Change detected in album directory: %s. Scheduling rescan.", albumDir)
	ts.TriggerScan(albumDir)
}

// albumDirForEvent 返回事件所属的一级专辑目录，不属于任何专辑目录时返回空字符串
func albumDirForEvent(root, name string) string {
	if filepath.Dir(name) == root {
		if util.IsDirectory(name) {
			return name
		}
		return ""
	}
	if filepath.Dir(filepath.Dir(name)) == root {
		return filepath.Dir(name)
	}
	return ""
}

// performScan 执行实际的专辑目录扫描和导出
func (ts *TaskScheduler) performScan(dir string) {
	ts.scanMutex.Lock()
	defer ts.scanMutex.Unlock()
	ts.logger.Printf("-> Performing full scan for changes in directory: %s", dir)

	switch ts.waitForFilesStability(dir) {
	case filesGone:
		ts.logger.Printf("  -> Album directory %s no longer exists. Dropping scan.", dir)
		return
	case filesBusy:
		ts.logger.Printf("  -> Files in %s are still changing. Rescheduling scan.", dir)
		ts.TriggerScan(dir)
		return
	}

	if !ts.needsExport(dir) {
		ts.logger.Printf("  -> Album directory %s already processed and unchanged. Skipping.", dir)
		return
	}

	if err := ts.processAlbum(dir); err != nil {
		if errors.Is(err, scanner.ErrNoTracklist) {
			ts.logger.Printf("No tracklist found in %s. Not marking as processed.", dir)
			return
		}
		ts.logger.Printf("ERROR: %v", err)
	}
}

func (ts *TaskScheduler) processAlbum(dir string) error {
	a, err := ts.albumScanner.ScanAlbumDirectory(dir)
	if err != nil {
		return fmt.Errorf("error scanning album directory %s: %w", dir, err)
	}
	ts.logger.Printf("Album '%s - %s' (%s) found with %d tracks. Exporting...", a.Artist, a.Title, a.Year, len(a.Tracks))

	written, err := ts.albumExporter.ExportAlbum(a, ts.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("error exporting album '%s - %s': %w", a.Artist, a.Title, err)
	}
	ts.logger.Printf("Successfully exported album '%s - %s' (%d files).", a.Artist, a.Title, len(written))

	if _, err := ts.dbStore.AddProcessedAlbum(dir, len(a.Tracks)); err != nil {
		return err
	}
	return nil
}

// needsExport 判断专辑是否需要（重新）导出：从未处理过，或处理之后曲目表、音频文件又被修改过
func (ts *TaskScheduler) needsExport(dir string) bool {
	processedAt, err := ts.dbStore.ProcessedAt(dir)
	if err != nil {
		ts.logger.Printf("ERROR: Error checking processed status for %s: %v", dir, err)
		return true
	}
	if processedAt.IsZero() {
		return true
	}
	files, err := relevantFiles(dir)
	if err != nil {
		ts.logger.Printf("ERROR: Error reading directory %s: %v", dir, err)
		return true
	}
	for _, info := range files {
		if info.ModTime.After(processedAt) {
			return true
		}
	}
	return false
}

// fileInfo 用于存储文件的关键信息
type fileInfo struct {
	Size    int64
	ModTime time.Time
}

// sameAs 比较大小和修改时间；time.Time 不能用 == 比较
func (f fileInfo) sameAs(other fileInfo) bool {
	return f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}

// stability 是等待文件稳定的结果
type stability int

const (
	filesBusy stability = iota // 超过 StabilityMaxWait 仍在变化
	filesStable
	filesGone // 专辑目录已被删除
)

// waitForFilesStability 等待目录中的相关文件在 StabilityQuietDuration 内不再变化
func (ts *TaskScheduler) waitForFilesStability(dir string) stability {
	ts.logger.Printf("  -> Waiting for files in %s to stabilize for %v...", dir, ts.cfg.StabilityQuietDuration)
	previous := make(map[string]fileInfo)
	lastChange := make(map[string]time.Time)
	start := time.Now()
	for time.Since(start) < ts.cfg.StabilityMaxWait {
		now := time.Now()
		current, err := relevantFiles(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return filesGone
			}
			ts.logger.Printf("ERROR: Error reading directory %s for stability check: %v", dir, err)
			time.Sleep(ts.cfg.StabilityCheckInterval)
			continue
		}
		if len(current) == 0 {
			ts.logger.Printf("  -> No relevant files found in %s that require stability check. Proceeding.", dir)
			return filesStable
		}

		quiet := true
		for path, info := range current {
			prev, seen := previous[path]
			if !seen || !prev.sameAs(info) {
				lastChange[path] = now
			}
			if now.Sub(lastChange[path]) < ts.cfg.StabilityQuietDuration {
				quiet = false
			}
		}
		previous = current
		if quiet {
			ts.logger.Printf("  -> All relevant files in %s are stable for at least %v.", dir, ts.cfg.StabilityQuietDuration)
			return filesStable
		}
		time.Sleep(ts.cfg.StabilityCheckInterval)
	}
	ts.logger.Printf("  -> Max wait time for stability exceeded for %s.", dir)
	return filesBusy
}

func relevantFiles(dir string) (map[string]fileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]fileInfo)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !util.IsRelevantAlbumFile(path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		files[path] = fileInfo{Size: info.Size(), ModTime: info.ModTime()}
	}
	return files, nil
}
