package service

import (
	"context"
	"testing"

	"github.com/haierkeys/note-link-service/internal/dto"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNoteService(repo *memRepo, pub EventPublisher) *NoteService {
	return NewNoteService(repo, pub, zap.NewNop())
}

func TestNoteCreate(t *testing.T) {
	repo := newMemRepo()
	pub := &capturePublisher{}
	svc := newTestNoteService(repo, pub)

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "  Graph Theory  ",
		Content: "nodes and edges",
		Tags:    []string{"math"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Graph Theory", note.Title, "title is trimmed")
	assert.NotZero(t, note.ID)
	assert.Equal(t, []string{EventNoteCreated}, pub.names())
}

func TestNoteCreateTitleRequired(t *testing.T) {
	svc := newTestNoteService(newMemRepo(), nil)
	_, err := svc.Create(context.Background(), &dto.NoteCreateRequest{Title: "   "})
	requireCode(t, err, code.ErrorNoteTitleRequired)
}

func TestNoteCreateDuplicateTitle(t *testing.T) {
	repo := newMemRepo()
	repo.add("Graph Theory", "")
	svc := newTestNoteService(repo, nil)

	_, err := svc.Create(context.Background(), &dto.NoteCreateRequest{Title: "graph theory"})
	requireCode(t, err, code.ErrorNoteTitleExists)
}

func TestNoteGetNotFound(t *testing.T) {
	svc := newTestNoteService(newMemRepo(), nil)
	_, err := svc.Get(context.Background(), 404)
	requireCode(t, err, code.ErrorNoteNotFound)
}

func TestNoteUpdatePartial(t *testing.T) {
	repo := newMemRepo()
	orig := repo.add("Graph Theory", "old content", "math")
	svc := newTestNoteService(repo, nil)

	content := "new content"
	updated, err := svc.Update(context.Background(), orig.ID, &dto.NoteUpdateRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Graph Theory", updated.Title, "nil fields keep their value")
	assert.Equal(t, "new content", updated.Content)
	assert.Equal(t, []string{"math"}, updated.Tags)
}

func TestNoteUpdateTitleConflict(t *testing.T) {
	repo := newMemRepo()
	repo.add("Taken", "")
	note := repo.add("Mine", "")
	svc := newTestNoteService(repo, nil)

	title := "taken"
	_, err := svc.Update(context.Background(), note.ID, &dto.NoteUpdateRequest{Title: &title})
	requireCode(t, err, code.ErrorNoteTitleExists)
}

func TestNoteUpdateOwnTitleCaseChange(t *testing.T) {
	repo := newMemRepo()
	note := repo.add("graph theory", "")
	svc := newTestNoteService(repo, nil)

	// renaming a note to a cased variant of its own title is not a conflict
	title := "Graph Theory"
	updated, err := svc.Update(context.Background(), note.ID, &dto.NoteUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Graph Theory", updated.Title)
}

func TestNoteDelete(t *testing.T) {
	repo := newMemRepo()
	pub := &capturePublisher{}
	note := repo.add("Gone Soon", "")
	svc := newTestNoteService(repo, pub)

	require.NoError(t, svc.Delete(context.Background(), note.ID))
	_, err := svc.Get(context.Background(), note.ID)
	requireCode(t, err, code.ErrorNoteNotFound)
	assert.Equal(t, []string{EventNoteDeleted}, pub.names())
}

func TestNoteList(t *testing.T) {
	repo := newMemRepo()
	repo.add("Go Notes", "about go")
	repo.add("Rust Notes", "about rust")
	repo.add("Recipes", "pasta")
	svc := newTestNoteService(repo, nil)

	notes, count, err := svc.List(context.Background(), "notes", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, notes, 2)

	page, count, err := svc.List(context.Background(), "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, page, 2)
}
