package tract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/fetcher"
)

// tractIDWidth is the length of a tract GEOID: 2 state + 3 county + 6 tract digits.
const tractIDWidth = 11

// survey is the food-access table keyed by normalized tract identifier.
type survey struct {
	rows       map[string]attrs
	total      int
	duplicates int
}

// readSurvey reads the food-access table and indexes it by idColumn.
// When dropFirst is set the first column is discarded before anything
// else; it carries a row index, not data.
func readSurvey(ctx context.Context, path, sheet, idColumn string, dropFirst bool) (*survey, error) {
	tbl, err := fetcher.ReadTable(ctx, path, fetcher.TableOptions{SheetName: sheet})
	if err != nil {
		return nil, eris.Wrapf(err, "tract: open food access %s", path)
	}

	header := tbl.Header
	offset := 0
	if dropFirst && len(header) > 0 {
		header = header[1:]
		offset = 1
	}

	idIdx := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), idColumn) {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, eris.Errorf("tract: food access source %s has no %q column", path, idColumn)
	}

	s := &survey{rows: make(map[string]attrs, len(tbl.Rows))}
	for n, row := range tbl.Rows {
		if len(row) > offset {
			row = row[offset:]
		} else {
			row = nil
		}

		a := newAttrs(len(header))
		for i, h := range header {
			if i < len(row) {
				a.set(h, strings.TrimSpace(row[i]))
			} else {
				a.set(h, "")
			}
		}

		id := normalizeID(a.get(idColumn))
		if id == "" {
			return nil, eris.Errorf("tract: food access row %d has no %s", n+1, idColumn)
		}
		s.total++
		if _, dup := s.rows[id]; dup {
			s.duplicates++
			continue
		}
		s.rows[id] = a
	}

	if s.duplicates > 0 {
		zap.L().Warn("tract: duplicate food access rows ignored",
			zap.String("path", path),
			zap.Int("duplicates", s.duplicates),
		)
	}

	return s, nil
}

func (s *survey) lookup(id string) (attrs, bool) {
	a, ok := s.rows[normalizeID(id)]
	return a, ok
}

// normalizeID canonicalizes a tract identifier for matching. Numeric
// exports drop the leading zero of low state codes and may append ".0";
// both are undone for all-digit identifiers.
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimSuffix(id, ".0")
	if id == "" || len(id) >= tractIDWidth || !allDigits(id) {
		return id
	}
	return strings.Repeat("0", tractIDWidth-len(id)) + id
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
