package history

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
)

// searchWindow bounds how many distinct URLs Search ranks.
const searchWindow = 1000

// Visit is one entry of the history. Recent and Search return the latest
// visit of each URL.
type Visit struct {
	URL       string
	Title     string
	VisitedAt time.Time
}

// Record adds a visit to url.
func (s *Store) Record(ctx context.Context, url, title string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO visits (url, title, visited_at) VALUES (?, ?, ?)`,
		url, title, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns up to limit URLs, most recently visited first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT url, title, MAX(visited_at) AS last
		FROM visits
		GROUP BY url
		ORDER BY last DESC, MAX(id) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v    Visit
			nano int64
		)
		if err := rows.Scan(&v.URL, &v.Title, &nano); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt = time.Unix(0, nano)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	return visits, nil
}

// visitSource adapts visits to fuzzy.Source, matching on title and URL.
type visitSource []Visit

func (v visitSource) String(i int) string {
	return v[i].Title + " " + v[i].URL
}

func (v visitSource) Len() int {
	return len(v)
}

// Search ranks visited URLs against query by fuzzy match on title and URL.
// An empty query behaves like Recent.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Visit, error) {
	if limit <= 0 {
		return nil, nil
	}
	if query == "" {
		return s.Recent(ctx, limit)
	}
	visits, err := s.Recent(ctx, searchWindow)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, visitSource(visits))
	out := make([]Visit, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) >= limit {
			break
		}
		out = append(out, visits[m.Index])
	}
	return out, nil
}

// Clear deletes all visits.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
