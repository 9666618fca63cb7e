package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeEditor/internal/api/middleware"
	"resumeEditor/internal/database"
	"resumeEditor/internal/editor"
	"resumeEditor/internal/resume"
)

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	repo     *database.ResumeRepository
	sessions *editor.Manager
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(repo *database.ResumeRepository, sessions *editor.Manager) *ResumeHandler {
	return &ResumeHandler{repo: repo, sessions: sessions}
}

type createResumeRequest struct {
	Title  string          `json:"title"`
	Sample bool            `json:"sample"`
	Data   json.RawMessage `json:"data"`
}

type updateResumeRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

type renameResumeRequest struct {
	Title string `json:"title" binding:"required"`
}

type lockResumeRequest struct {
	Locked *bool `json:"isLocked" binding:"required"`
}

// CreateResume 新建简历：优先使用请求中的文档，其次示例内容，默认为空白模板。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var data *resume.Data
	switch {
	case len(req.Data) > 0:
		decoded, err := resume.Decode(req.Data)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		data = decoded
	case req.Sample:
		data = resume.Sample()
	default:
		data = resume.Default()
	}

	created, err := h.repo.Create(c.Request.Context(), req.Title, data)
	if err != nil {
		EditorError(c, err)
		return
	}
	middleware.LoggerFromContext(c).Info("resume created", slog.String("resume_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// ListResumes 列出全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		Internal(c, "failed to list resumes")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetResume 返回持久化的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	r, err := h.repo.LoadResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateResume 是编辑器远端写入所用的 {id, data} 接口，整体覆盖文档。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	data, err := resume.Decode(req.Data)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.repo.UpdateResume(c.Request.Context(), c.Param("id"), data); err != nil {
		EditorError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RenameResume 修改简历标题。
func (h *ResumeHandler) RenameResume(c *gin.Context) {
	var req renameResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.repo.Rename(c.Request.Context(), c.Param("id"), req.Title); err != nil {
		EditorError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LockResume 修改锁定状态，并同步到已打开的编辑会话。
func (h *ResumeHandler) LockResume(c *gin.Context) {
	var req lockResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	if err := h.repo.SetLocked(c.Request.Context(), id, *req.Locked); err != nil {
		EditorError(c, err)
		return
	}
	if session, err := h.sessions.Get(id); err == nil {
		if err := session.SetLocked(*req.Locked); err != nil {
			EditorError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isLocked": *req.Locked})
}

// DeleteResume 先关闭编辑会话再删除简历。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.sessions.Close(ctx, id); err != nil && !errors.Is(err, editor.ErrSessionNotFound) {
		middleware.LoggerFromContext(c).Warn("flush before delete failed", slog.Any("error", err))
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		EditorError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
