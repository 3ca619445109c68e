package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/config"
	"bindery/internal/library"
	"bindery/internal/logging"
)

// Scanner walks a directory tree and produces FileRecords for the
// documents it finds.
type Scanner struct {
	root     string
	maxDepth int
	skipDirs map[string]struct{}
	allowed  map[string]struct{}
	minSize  int64
	logger   *slog.Logger
}

// New builds a scanner rooted at path. maxDepth limits how far below
// the root the walk descends; zero means unlimited.
func New(path string, maxDepth int, cfg config.Scan, logger *slog.Logger) (*Scanner, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	skip := make(map[string]struct{}, len(cfg.SkipDirs))
	for _, dir := range cfg.SkipDirs {
		skip[dir] = struct{}{}
	}
	allowed := make(map[string]struct{}, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		allowed["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &Scanner{
		root:     absPath,
		maxDepth: maxDepth,
		skipDirs: skip,
		allowed:  allowed,
		minSize:  cfg.MinSizeBytes,
		logger:   logging.NewComponentLogger(logger, "scan"),
	}, nil
}

// Root returns the absolute scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree. Unreadable entries are logged and skipped; only
// a cancelled context aborts the walk.
func (s *Scanner) Scan(ctx context.Context) ([]*library.FileRecord, error) {
	var records []*library.FileRecord

	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		depth := len(strings.Split(relPath, string(os.PathSeparator)))
		if relPath == "." {
			depth = 0
		}
		if s.maxDepth > 0 && depth > s.maxDepth {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if s.shouldSkipDir(info.Name()) && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		if rec := s.newRecord(path, info); rec != nil {
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("walk complete", logging.Int("files", len(records)))
	return records, nil
}

func (s *Scanner) newRecord(path string, info os.FileInfo) *library.FileRecord {
	name := info.Name()
	ext := detectExtension(name)

	failed := strings.HasSuffix(name, ".download") || strings.HasSuffix(name, ".crdownload")
	if !failed {
		if _, ok := s.allowed[strings.ToLower(ext)]; !ok {
			return nil
		}
	}

	// Size checks only make sense for container formats with mandatory
	// structure; a tiny plain-text file can be legitimate.
	isEbook := ext == ".pdf" || ext == ".epub"
	tooSmall := !failed && isEbook && info.Size() < s.minSize

	return &library.FileRecord{
		Path:           path,
		Name:           name,
		Extension:      ext,
		Size:           info.Size(),
		ModTime:        info.ModTime(),
		FailedDownload: failed,
		TooSmall:       tooSmall,
	}
}

func (s *Scanner) shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasSuffix(name, ".download") || strings.HasSuffix(name, ".crdownload") {
		return true
	}
	_, skip := s.skipDirs[name]
	return skip
}

// detectExtension special-cases multi-dot archive extensions and
// incomplete-download markers before falling back to filepath.Ext.
func detectExtension(name string) string {
	switch {
	case strings.HasSuffix(name, ".tar.gz"):
		return ".tar.gz"
	case strings.HasSuffix(name, ".download"):
		return ".download"
	case strings.HasSuffix(name, ".crdownload"):
		return ".crdownload"
	default:
		return filepath.Ext(name)
	}
}
