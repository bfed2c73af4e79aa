package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BBBtp/Tracker/internal/logger"
)

const (
	// MaxBackups is the number of database snapshots kept before rotation.
	MaxBackups = 14
	// DirName is the backup directory name under the config directory.
	DirName = "backups"

	filePrefix = "tracker-"
	fileSuffix = ".db"
	stampShort = "20060102-1504"
	stampLong  = "20060102-150405"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots and restores the tracker database.
type Manager struct {
	dbPath    string
	backupDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), DirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create snapshots the database into the backup directory and rotates old
// snapshots beyond the retention limit.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath := m.freshBackupPath()

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// Rotation failure never fails the backup itself.
			logger.Warn("failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// freshBackupPath picks a timestamped filename, widening the timestamp and
// finally appending a counter until the name is unused.
func (m *Manager) freshBackupPath() string {
	now := time.Now()
	path := filepath.Join(m.backupDir, filePrefix+now.Format(stampShort)+fileSuffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	path = filepath.Join(m.backupDir, filePrefix+now.Format(stampLong)+fileSuffix)
	counter := 0
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		counter++
		path = filepath.Join(m.backupDir,
			fmt.Sprintf("%s%s-%d%s", filePrefix, now.Format(stampLong), counter, fileSuffix))
	}
}

// snapshot copies the database with VACUUM INTO, falling back to a plain file
// copy when the SQLite build lacks it.
func (m *Manager) snapshot(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dbPath, destPath)
	}

	return nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		// Drop a trailing "-N" collision counter if present.
		if parts := strings.Split(stamp, "-"); len(parts) == 3 {
			stamp = strings.Join(parts[:2], "-")
		}

		timestamp, err := time.Parse(stampShort, stamp)
		if err != nil {
			timestamp, err = time.Parse(stampLong, stamp)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	if len(backups) <= MaxBackups {
		return nil
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// Restore replaces the database with the given backup file, snapshotting the
// current database first.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		// skipRotation so the pre-restore snapshot can't trigger recursion.
		current, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		logger.Info("created backup of current database", "path", filepath.Base(current))
	}

	// Copy to a temp file then rename, so a failed copy never leaves a
	// half-written database behind.
	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

// verify checks that the file is a readable SQLite database.
func verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
