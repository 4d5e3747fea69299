package queue

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Loader reads audit-log exports through DuckDB. Files are ingested in
// lexicographic name order, which fixes the order last-write-wins dedup
// resolves duplicate ids in.
type Loader struct {
	db     *sql.DB
	dir    string
	prefix string
	logger *zap.Logger
}

func NewLoader(dir, prefix string, logger *zap.Logger) (*Loader, error) {
	database, err := getDB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}

	return &Loader{
		db:     database,
		dir:    dir,
		prefix: prefix,
		logger: logger,
	}, nil
}

// sqlQuote escapes a path for splicing into a single-quoted SQL literal.
// read_json takes the path as a literal, not a bind parameter.
func sqlQuote(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}

// listSources returns the matching audit files sorted by name. A missing
// directory is a benign empty result, not an error.
func (l *Loader) listSources() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Info("audit directory does not exist, nothing to load",
				zap.String("dir", l.dir))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, l.prefix) && strings.HasSuffix(name, ".json") {
			files = append(files, filepath.Join(l.dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadAll flattens every audit file into a single record list, preserving
// file order and in-file order. Any read or parse failure aborts the load:
// a half-built queue is worse than none.
func (l *Loader) LoadAll() ([]AuditRecord, error) {
	files, err := l.listSources()
	if err != nil {
		return nil, err
	}

	var records []AuditRecord
	for _, file := range files {
		fileRecords, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load audit file %s: %w", file, err)
		}
		records = append(records, fileRecords...)
	}

	l.logger.Info("loaded audit records",
		zap.Int("files", len(files)),
		zap.Int("records", len(records)))

	return records, nil
}

func (l *Loader) loadFile(path string) ([]AuditRecord, error) {
	query := fmt.Sprintf(`
		SELECT CAST(json AS VARCHAR) as record_json
		FROM read_json('%s',
			format = 'array',
			records = 'false'
		)
	`, sqlQuote(path))

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		var record AuditRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		if record.ID == "" {
			return nil, fmt.Errorf("record without id")
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// auditTimeLayouts covers the shapes a created_at aggregate comes back in.
// read_json detects ISO-8601 strings as TIMESTAMP (or TIMESTAMPTZ), and the
// VARCHAR cast renders those space-separated without a T; columns left as
// VARCHAR stay RFC3339.
var auditTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
}

func parseAuditTime(s string) (time.Time, error) {
	for _, layout := range auditTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Stats aggregates the audit sources without building a queue: totals,
// distinct ids, time range, and per-predicted-intent counts.
func (l *Loader) Stats() (*SourceStats, error) {
	files, err := l.listSources()
	if err != nil {
		return nil, err
	}

	stats := &SourceStats{
		Files: len(files),
	}
	if len(files) == 0 {
		return stats, nil
	}

	glob := sqlQuote(filepath.Join(l.dir, l.prefix+"*.json"))

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) as count,
			COUNT(DISTINCT id) as distinct_ids,
			CAST(MIN(created_at) AS VARCHAR) as first,
			CAST(MAX(created_at) AS VARCHAR) as last
		FROM read_json('%s',
			format = 'array',
			union_by_name = true
		)
	`, glob)

	var count, distinctIDs int
	var firstStr, lastStr sql.NullString
	if err := l.db.QueryRow(query).Scan(&count, &distinctIDs, &firstStr, &lastStr); err != nil {
		return nil, fmt.Errorf("failed to get audit stats: %w", err)
	}

	stats.Records = count
	stats.DistinctIDs = distinctIDs
	if firstStr.Valid {
		stats.First, err = parseAuditTime(firstStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse earliest created_at: %w", err)
		}
	}
	if lastStr.Valid {
		stats.Last, err = parseAuditTime(lastStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest created_at: %w", err)
		}
	}

	query = fmt.Sprintf(`
		SELECT COALESCE(predicted_intent, '') as predicted, COUNT(*) as count
		FROM read_json('%s',
			format = 'array',
			union_by_name = true
		)
		GROUP BY predicted
		ORDER BY count DESC, predicted
	`, glob)

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get per-intent stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var predicted string
		var n int
		if err := rows.Scan(&predicted, &n); err != nil {
			return nil, fmt.Errorf("failed to scan per-intent stats: %w", err)
		}
		stats.ByPredicted = append(stats.ByPredicted, PredictedCount{Predicted: predicted, Count: n})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return stats, nil
}
