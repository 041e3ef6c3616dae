// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/model"
	"github.com/haierkeys/note-link-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      m.Tags,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *noteRepository) GetByTitle(ctx context.Context, title string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", title).
		Order("updated_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var ms []model.Note
	if err := r.dao.db.WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for i := range ms {
		notes = append(notes, r.toDomain(&ms[i]))
	}
	return notes, nil
}

func (r *noteRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Note, error) {
	query := r.dao.db.WithContext(ctx).Model(&model.Note{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var ms []model.Note
	if err := query.Order("updated_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for i := range ms {
		notes = append(notes, r.toDomain(&ms[i]))
	}
	return notes, nil
}

func (r *noteRepository) ListCount(ctx context.Context, keyword string) (int64, error) {
	query := r.dao.db.WithContext(ctx).Model(&model.Note{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.UpdatedAt = timex.Now()
	// Save writes every column so cleared content and tags persist too.
	// Save 写入所有列，清空的内容与标签也会生效
	if err := r.dao.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

// Ensure noteRepository implements domain.NoteRepository
var _ domain.NoteRepository = (*noteRepository)(nil)
