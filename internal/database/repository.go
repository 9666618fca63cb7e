package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumeEditor/internal/layout"
	"resumeEditor/internal/resume"
)

// ErrResumeNotFound 表示简历不存在或已删除。
var ErrResumeNotFound = errors.New("resume not found")

// ResumeSummary 是列表页展示的简历摘要。
type ResumeSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Locked    bool      `json:"isLocked"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResumeRepository 负责简历的读写，同时是编辑会话的载入来源与远端写入目标。
type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Create 以给定内容新建简历；data 为 nil 时使用空白模板。
func (r *ResumeRepository) Create(ctx context.Context, title string, data *resume.Data) (*resume.Resume, error) {
	if data == nil {
		data = resume.Default()
	}
	if title == "" {
		title = resume.DefaultResumeTitle
	}
	if err := checkDocument(data); err != nil {
		return nil, err
	}
	raw, err := resume.Encode(data)
	if err != nil {
		return nil, err
	}

	model := Resume{
		ID:    uuid.NewString(),
		Title: title,
		Data:  datatypes.JSON(raw),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return &resume.Resume{ID: model.ID, Title: model.Title, Data: data}, nil
}

// List 按最近更新时间倒序列出简历。
func (r *ResumeRepository) List(ctx context.Context) ([]ResumeSummary, error) {
	var models []Resume
	if err := r.db.WithContext(ctx).
		Select("id", "title", "locked", "updated_at").
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	out := make([]ResumeSummary, 0, len(models))
	for _, m := range models {
		out = append(out, ResumeSummary{ID: m.ID, Title: m.Title, Locked: m.Locked, UpdatedAt: m.UpdatedAt})
	}
	return out, nil
}

// LoadResume 读取并解码一份简历。
func (r *ResumeRepository) LoadResume(ctx context.Context, id string) (*resume.Resume, error) {
	model, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := resume.Decode(model.Data)
	if err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}
	return &resume.Resume{ID: model.ID, Title: model.Title, Locked: model.Locked, Data: data}, nil
}

// UpdateResume 用完整文档覆盖简历内容。
func (r *ResumeRepository) UpdateResume(ctx context.Context, id string, data *resume.Data) error {
	if err := checkDocument(data); err != nil {
		return err
	}
	raw, err := resume.Encode(data)
	if err != nil {
		return err
	}
	return r.update(ctx, id, map[string]any{"data": datatypes.JSON(raw)})
}

// Rename 修改简历标题。
func (r *ResumeRepository) Rename(ctx context.Context, id, title string) error {
	return r.update(ctx, id, map[string]any{"title": title})
}

// SetLocked 修改简历的锁定状态。
func (r *ResumeRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	return r.update(ctx, id, map[string]any{"locked": locked})
}

// Delete 软删除简历。
func (r *ResumeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Resume{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepository) find(ctx context.Context, id string) (*Resume, error) {
	var model Resume
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrResumeNotFound
	case err != nil:
		return nil, fmt.Errorf("query resume: %w", err)
	}
	return &model, nil
}

func (r *ResumeRepository) update(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Resume{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func checkDocument(data *resume.Data) error {
	if err := resume.Validate(data); err != nil {
		return err
	}
	return layout.CheckDocument(data)
}
