package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
)

// UserIndex keeps the users search index in step with the users table.
type UserIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{es: es, index: index}
}

type userDoc struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Replace deletes every indexed user and bulk-indexes users in their place.
func (x *UserIndex) Replace(ctx context.Context, users []*entity.User) error {
	if err := x.clear(ctx); err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	return x.bulkIndex(ctx, users)
}

func (x *UserIndex) clear(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := x.es.DeleteByQuery(
		[]string{x.index},
		strings.NewReader(`{"query":{"match_all":{}}}`),
		x.es.DeleteByQuery.WithContext(c),
		x.es.DeleteByQuery.WithRefresh(true),
		x.es.DeleteByQuery.WithConflicts("proceed"),
	)
	if err != nil {
		return fmt.Errorf("clear index %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	// a missing index has nothing to clear
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("clear index %s: %s", x.index, res.Status())
	}
	return nil
}

func (x *UserIndex) bulkIndex(ctx context.Context, users []*entity.User) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, u := range users {
		meta := map[string]any{"index": map[string]any{"_index": x.index, "_id": u.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		doc := userDoc{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
			UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := x.es.Bulk(&buf, x.es.Bulk.WithContext(c), x.es.Bulk.WithRefresh("true"))
	if err != nil {
		return fmt.Errorf("bulk index %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("bulk index %s: %s", x.index, res.Status())
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("bulk index %s: decode response: %w", x.index, err)
	}
	if parsed.Errors {
		failed := 0
		for _, item := range parsed.Items {
			for _, r := range item {
				if r.Status >= 300 {
					failed++
				}
			}
		}
		return fmt.Errorf("bulk index %s: %d of %d documents failed", x.index, failed, len(users))
	}
	return nil
}
