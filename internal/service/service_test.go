package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixtureTime keeps note timestamps deterministic across test runs
var fixtureTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// memRepo is an in-memory NoteRepository for service tests.
type memRepo struct {
	mu    sync.Mutex
	seq   int64
	notes map[int64]*domain.Note
	// failCreateTitles simulates store failures for specific titles
	failCreateTitles map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		notes:            make(map[int64]*domain.Note),
		failCreateTitles: make(map[string]bool),
	}
}

func (r *memRepo) add(title, content string, tags ...string) *domain.Note {
	return r.addAt(title, content, fixtureTime, tags...)
}

func (r *memRepo) addAt(title, content string, updatedAt time.Time, tags ...string) *domain.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n := &domain.Note{
		ID:        r.seq,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: fixtureTime,
		UpdatedAt: updatedAt,
	}
	r.notes[n.ID] = n
	return n
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *memRepo) GetByTitle(ctx context.Context, title string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *domain.Note
	for _, n := range r.notes {
		if strings.EqualFold(n.Title, title) {
			if found == nil || n.UpdatedAt.After(found.UpdatedAt) {
				found = n
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func (r *memRepo) ListAll(ctx context.Context) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) List(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Note, error) {
	all, _ := r.ListAll(ctx)
	var filtered []*domain.Note
	for _, n := range all {
		if keyword == "" ||
			strings.Contains(strings.ToLower(n.Title), strings.ToLower(keyword)) ||
			strings.Contains(strings.ToLower(n.Content), strings.ToLower(keyword)) {
			filtered = append(filtered, n)
		}
	}
	offset := (page - 1) * pageSize
	if offset >= len(filtered) {
		return []*domain.Note{}, nil
	}
	end := offset + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *memRepo) ListCount(ctx context.Context, keyword string) (int64, error) {
	notes, _ := r.List(ctx, keyword, 1, 1<<30)
	return int64(len(notes)), nil
}

func (r *memRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateTitles[note.Title] {
		return nil, errors.New("store unavailable")
	}
	r.seq++
	cp := *note
	cp.ID = r.seq
	cp.CreatedAt = fixtureTime
	cp.UpdatedAt = fixtureTime
	r.notes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.ID]; !ok {
		return nil, errors.New("note vanished")
	}
	cp := *note
	cp.UpdatedAt = time.Now()
	r.notes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

var _ domain.NoteRepository = (*memRepo)(nil)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturePublisher) Publish(event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func newTestLinkService(repo domain.NoteRepository) *LinkService {
	return NewLinkService(repo, nil, LinkServiceConfig{}, zap.NewNop())
}

// requireCode asserts that err carries the expected business code.
func requireCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	require.Error(t, err)
	var c *code.Code
	require.True(t, errors.As(err, &c), "error is not a *code.Code: %v", err)
	require.Equal(t, want.Code(), c.Code())
}
