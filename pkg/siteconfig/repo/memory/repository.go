package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Repository implements siteconfig.Repository using in-memory storage
type Repository struct {
	mu      sync.RWMutex
	records map[string]*siteconfig.Record // slug -> record
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		records: make(map[string]*siteconfig.Record),
	}
}

// CreateRecord inserts record. The slug check and the insert happen under one
// lock, so concurrent creates of a slug produce exactly one winner.
func (r *Repository) CreateRecord(ctx context.Context, record *siteconfig.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.Slug]; exists {
		return siteconfig.ErrDuplicateIdentity
	}

	// Store a copy to avoid external modifications
	r.records[record.Slug] = record.Clone()
	return nil
}

func (r *Repository) GetRecordBySlug(ctx context.Context, slug string) (*siteconfig.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[slug]
	if !exists {
		return nil, siteconfig.ErrNotFound
	}

	// Return a copy to prevent external modifications
	return record.Clone(), nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record *siteconfig.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.Slug]; !exists {
		return siteconfig.ErrNotFound
	}

	r.records[record.Slug] = record.Clone()
	return nil
}

func (r *Repository) ListRecords(ctx context.Context, params siteconfig.ListParams) ([]*siteconfig.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(params.Search))

	var result []*siteconfig.Record
	for _, record := range r.records {
		if search != "" && !matches(record, search) {
			continue
		}
		result = append(result, record.Clone())
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Slug < result[j].Slug
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if params.Limit > 0 && len(result) > params.Limit {
		result = result[:params.Limit]
	}

	return result, nil
}

func matches(record *siteconfig.Record, search string) bool {
	return strings.Contains(strings.ToLower(record.Slug), search) ||
		strings.Contains(strings.ToLower(record.Config.Business.Name), search) ||
		strings.Contains(strings.ToLower(record.Config.Business.City), search)
}
