package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeDedupe()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		normalized = strings.TrimPrefix(normalized, ".")
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultExtensions()
	}
	c.Scan.Extensions = exts

	dirs := make([]string, 0, len(c.Scan.SkipDirs))
	for _, dir := range c.Scan.SkipDirs {
		trimmed := strings.TrimSpace(dir)
		if trimmed == "" {
			continue
		}
		dirs = append(dirs, trimmed)
	}
	if len(dirs) == 0 {
		dirs = defaultSkipDirs()
	}
	c.Scan.SkipDirs = dirs

	if c.Scan.MaxDepth < 0 {
		c.Scan.MaxDepth = 0
	}
	if c.Scan.MinSizeBytes <= 0 {
		c.Scan.MinSizeBytes = defaultMinSizeBytes
	}
}

func (c *Config) normalizeDedupe() {
	if c.Dedupe.Workers <= 0 {
		c.Dedupe.Workers = defaultWorkers
	}
}

func (c *Config) normalizeReport() {
	c.Report.TodoFile = strings.TrimSpace(c.Report.TodoFile)
	if c.Report.TodoFile == "" {
		c.Report.TodoFile = defaultTodoFile
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
