package service

import (
	"context"
	"strings"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/dto"
	"github.com/haierkeys/note-link-service/pkg/code"

	"go.uber.org/zap"
)

// NoteService 笔记增删改查服务
type NoteService struct {
	repo      domain.NoteRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewNoteService(repo domain.NoteRepository, publisher EventPublisher, logger *zap.Logger) *NoteService {
	return &NoteService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create 创建笔记，标题不能为空且不能与现有笔记重复（大小写不敏感）
func (s *NoteService) Create(ctx context.Context, req *dto.NoteCreateRequest) (*domain.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, code.ErrorNoteTitleRequired
	}
	exist, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if exist != nil {
		return nil, code.ErrorNoteTitleExists.WithData(exist.Title)
	}
	note := &domain.Note{
		Title:   title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	created, err := s.repo.Create(ctx, note)
	if err != nil {
		s.logger.Error("note create failed", zap.String("title", title), zap.Error(err))
		return nil, code.ErrorNoteCreateFail.WithDetails(err.Error())
	}
	s.publish(EventNoteCreated, dto.NoteItemFromDomain(created))
	return created, nil
}

// Get 按 ID 查询笔记
func (s *NoteService) Get(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound.WithData(id)
	}
	return note, nil
}

// List 按关键字分页查询
func (s *NoteService) List(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Note, int64, error) {
	notes, err := s.repo.List(ctx, keyword, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	count, err := s.repo.ListCount(ctx, keyword)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notes, count, nil
}

// Update 更新笔记，nil 字段保持原值
func (s *NoteService) Update(ctx context.Context, id int64, req *dto.NoteUpdateRequest) (*domain.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, code.ErrorNoteTitleRequired
		}
		if !strings.EqualFold(title, note.Title) {
			exist, err := s.repo.GetByTitle(ctx, title)
			if err != nil {
				return nil, code.ErrorDBQuery.WithDetails(err.Error())
			}
			if exist != nil && exist.ID != id {
				return nil, code.ErrorNoteTitleExists.WithData(exist.Title)
			}
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	if _, err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error("note update failed", zap.Int64("note_id", id), zap.Error(err))
		return nil, code.ErrorNoteUpdateFail.WithDetails(err.Error())
	}
	s.publish(EventNoteUpdated, dto.NoteItemFromDomain(note))
	return note, nil
}

// Delete 删除笔记
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("note delete failed", zap.Int64("note_id", id), zap.Error(err))
		return code.ErrorNoteDeleteFail.WithDetails(err.Error())
	}
	s.publish(EventNoteDeleted, dto.NoteItemFromDomain(note))
	return nil
}

func (s *NoteService) publish(event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(event, payload)
}
