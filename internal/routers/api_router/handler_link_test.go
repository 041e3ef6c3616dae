package api_router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/dto"
	"github.com/haierkeys/note-link-service/internal/service"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubNoteRepo 处理器测试用的内存仓储，可按标题注入创建失败
type stubNoteRepo struct {
	notes      []*domain.Note
	nextID     int64
	failTitles map[string]bool
}

func (r *stubNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (r *stubNoteRepo) GetByTitle(ctx context.Context, title string) (*domain.Note, error) {
	for _, n := range r.notes {
		if strings.EqualFold(n.Title, title) {
			return n, nil
		}
	}
	return nil, nil
}

func (r *stubNoteRepo) ListAll(ctx context.Context) ([]*domain.Note, error) {
	return r.notes, nil
}

func (r *stubNoteRepo) List(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Note, error) {
	return r.notes, nil
}

func (r *stubNoteRepo) ListCount(ctx context.Context, keyword string) (int64, error) {
	return int64(len(r.notes)), nil
}

func (r *stubNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if r.failTitles[note.Title] {
		return nil, errors.New("disk full")
	}
	r.nextID++
	note.ID = r.nextID
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()
	r.notes = append(r.notes, note)
	return note, nil
}

func (r *stubNoteRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	return note, nil
}

func (r *stubNoteRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

var _ domain.NoteRepository = (*stubNoteRepo)(nil)

func newLinkTestContext(t *testing.T, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/notes/"+id+"/links/create-bidirectional", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c, w
}

type materializeRes struct {
	Code   int                     `json:"code"`
	Status bool                    `json:"status"`
	Data   dto.MaterializeResponse `json:"data"`
}

func TestCreateBidirectionalPartialFailureCode(t *testing.T) {
	repo := &stubNoteRepo{
		nextID:     1,
		failTitles: map[string]bool{"Doomed": true},
	}
	repo.notes = []*domain.Note{{ID: 1, Title: "Source", Content: "[[Ghost]] [[Doomed]]"}}

	svc := service.NewLinkService(repo, nil, service.LinkServiceConfig{}, zap.NewNop())
	h := NewLinkHandler(&app.App{LinkService: svc})

	c, w := newLinkTestContext(t, "1")
	h.CreateBidirectional(c)

	var res materializeRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, code.ErrorLinkMaterializeFail.Code(), res.Code)
	assert.False(t, res.Status)

	// the created placeholder is still reported alongside the failure
	require.Len(t, res.Data.CreatedNotes, 1)
	assert.Equal(t, "Ghost", res.Data.CreatedNotes[0].Title)
	require.Len(t, res.Data.Failed, 1)
	assert.Equal(t, "Doomed", res.Data.Failed[0].Title)
	assert.NotEmpty(t, res.Data.Failed[0].Reason)
}

func TestCreateBidirectionalAllCreatedIsSuccess(t *testing.T) {
	repo := &stubNoteRepo{nextID: 1}
	repo.notes = []*domain.Note{{ID: 1, Title: "Source", Content: "[[Ghost]]"}}

	svc := service.NewLinkService(repo, nil, service.LinkServiceConfig{}, zap.NewNop())
	h := NewLinkHandler(&app.App{LinkService: svc})

	c, w := newLinkTestContext(t, "1")
	h.CreateBidirectional(c)

	var res materializeRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, code.Success.Code(), res.Code)
	assert.True(t, res.Status)
	require.Len(t, res.Data.CreatedNotes, 1)
	assert.Empty(t, res.Data.Failed)
}
