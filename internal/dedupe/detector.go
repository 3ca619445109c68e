package dedupe

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/library"
	"bindery/internal/logging"
)

// Detector groups byte-identical files and applies the retention policy.
type Detector struct {
	extensions map[string]struct{}
	workers    int
	logger     *slog.Logger
}

// NewDetector builds a detector restricted to the given extensions
// (without dots) hashing with the given number of workers.
func NewDetector(extensions []string, workers int, logger *slog.Logger) *Detector {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed["."+ext] = struct{}{}
		}
	}
	return &Detector{
		extensions: allowed,
		workers:    workers,
		logger:     logging.NewComponentLogger(logger, "dedupe"),
	}
}

// Detect hashes eligible records and returns the duplicate groups plus
// the eligible records that survive. Records with extensions outside
// the allow list are never deletion candidates but are also absent from
// the returned clean slice. Each group lists the kept path first;
// groups are ordered by kept path so output is deterministic regardless
// of hashing completion order.
func (d *Detector) Detect(ctx context.Context, records []*library.FileRecord) ([]library.DuplicateGroup, []*library.FileRecord, error) {
	var eligible []*library.FileRecord
	for _, rec := range records {
		if _, ok := d.extensions[strings.ToLower(rec.Extension)]; !ok {
			continue
		}
		eligible = append(eligible, rec)
	}

	hashes := d.hashAll(ctx, eligible)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Single-threaded merge in input order keeps group member order
	// stable no matter which worker finished first.
	hashGroups := make(map[string][]*library.FileRecord)
	for _, rec := range eligible {
		if hash, ok := hashes[rec]; ok {
			hashGroups[hash] = append(hashGroups[hash], rec)
		}
	}

	var groups []library.DuplicateGroup
	doomed := make(map[string]bool)
	for _, members := range hashGroups {
		if len(members) < 2 {
			continue
		}
		kept := selectKeep(members)
		group := library.DuplicateGroup{Keep: kept.Path}
		for _, rec := range members {
			if rec.Path != kept.Path {
				doomed[rec.Path] = true
				group.Delete = append(group.Delete, rec.Path)
			}
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Keep < groups[j].Keep })

	var clean []*library.FileRecord
	for _, rec := range eligible {
		if !doomed[rec.Path] {
			clean = append(clean, rec)
		}
	}

	return groups, clean, nil
}

func (d *Detector) hashAll(ctx context.Context, records []*library.FileRecord) map[*library.FileRecord]string {
	hashes := make(map[*library.FileRecord]string, len(records))

	pool := newHashPool(d.workers)
	pool.start(ctx)

	go func() {
		defer pool.shutdown()
		for _, rec := range records {
			if rec.FailedDownload || rec.TooSmall {
				continue
			}
			if !pool.submit(ctx, hashJob{record: rec}) {
				return
			}
		}
	}()

	for result := range pool.results {
		if result.err != nil {
			d.logger.Warn("skipping unreadable file",
				logging.String("path", result.record.Path),
				logging.Error(result.err))
			continue
		}
		hashes[result.record] = result.hash
	}
	return hashes
}

// selectKeep applies the three-tier retention policy: normalized first,
// then shallowest path, then newest modification time.
func selectKeep(records []*library.FileRecord) *library.FileRecord {
	var normalized []*library.FileRecord
	for _, rec := range records {
		if rec.NewName != "" {
			normalized = append(normalized, rec)
		}
	}
	candidates := normalized
	if len(candidates) == 0 {
		candidates = records
	}

	minDepth := -1
	for _, rec := range candidates {
		depth := strings.Count(rec.Path, string(filepath.Separator))
		if minDepth == -1 || depth < minDepth {
			minDepth = depth
		}
	}
	var shallowest []*library.FileRecord
	for _, rec := range candidates {
		if strings.Count(rec.Path, string(filepath.Separator)) == minDepth {
			shallowest = append(shallowest, rec)
		}
	}
	if len(shallowest) == 0 {
		return records[0]
	}

	newest := shallowest[0]
	for _, rec := range shallowest[1:] {
		if rec.ModTime.After(newest.ModTime) {
			newest = rec
		}
	}
	return newest
}
