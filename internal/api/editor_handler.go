package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumeEditor/internal/api/middleware"
	"resumeEditor/internal/autosave"
	"resumeEditor/internal/editor"
	"resumeEditor/internal/layout"
	"resumeEditor/internal/patch"
	"resumeEditor/internal/resume"
	"resumeEditor/internal/sections"
)

// EditorHandler 把编辑会话的操作暴露为 HTTP 接口。所有修改都经过会话的唯一修改入口。
type EditorHandler struct {
	sessions *editor.Manager
	consumer *patch.Consumer
}

// NewEditorHandler 构造 EditorHandler。
func NewEditorHandler(sessions *editor.Manager, consumer *patch.Consumer) *EditorHandler {
	return &EditorHandler{sessions: sessions, consumer: consumer}
}

type editorState struct {
	Resume  *resume.Resume      `json:"resume"`
	History editor.HistoryState `json:"history"`
	Sync    *autosave.Status    `json:"sync,omitempty"`
}

type patchRequest struct {
	CallID     string            `json:"call_id" binding:"required"`
	Operations []patch.Operation `json:"operations" binding:"required"`
}

type documentRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

type fullWidthRequest struct {
	FullWidth *bool `json:"fullWidth" binding:"required"`
}

type dropRequest struct {
	Active string `json:"active" binding:"required"`
	Over   string `json:"over"`
}

type reorderRequest struct {
	Page   int           `json:"page"`
	Column layout.Column `json:"column" binding:"required"`
	From   int           `json:"from"`
	To     int           `json:"to"`
}

type moveItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

type customSectionRequest struct {
	Type  string `json:"type" binding:"required"`
	Title string `json:"title"`
}

func stateOf(s *editor.Session) editorState {
	state := editorState{Resume: s.Resume(), History: s.History()}
	if syncer, ok := s.Syncer().(interface{ Status() autosave.Status }); ok {
		status := syncer.Status()
		state.Sync = &status
	}
	return state
}

// session 取出已打开的会话；失败时已写入响应。
func (h *EditorHandler) session(c *gin.Context) (*editor.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		EditorError(c, err)
		return nil, false
	}
	return s, true
}

// respond 在修改成功后返回最新状态。
func (h *EditorHandler) respond(c *gin.Context, s *editor.Session, err error) {
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// Open 载入简历并创建编辑会话；会话已存在时直接返回。
func (h *EditorHandler) Open(c *gin.Context) {
	s, err := h.sessions.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		EditorError(c, err)
		return
	}
	if d := s.Current(); d != nil {
		if err := layout.Check(d.Metadata.Layout, d.SectionIDs()); err != nil {
			middleware.LoggerFromContext(c).Warn("opened resume with inconsistent layout", slog.Any("error", err))
		}
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// Close 写出待同步的修改并关闭会话。
func (h *EditorHandler) Close(c *gin.Context) {
	err := h.sessions.Close(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, editor.ErrSessionNotFound) {
		EditorError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) State(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// Preview 返回按布局解析后的分页视图。
func (h *EditorHandler) Preview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	d := s.Current()
	if d == nil {
		EditorError(c, editor.ErrNoDocument)
		return
	}
	c.JSON(http.StatusOK, layout.Preview(d))
}

// ReplaceDocument 用表单提交的完整文档替换当前文档。
func (h *EditorHandler) ReplaceDocument(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	next, err := resume.Decode(req.Data)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	err = s.Update(func(draft *resume.Data) error {
		if err := resume.Validate(next); err != nil {
			return err
		}
		if err := layout.CheckDocument(next); err != nil {
			return err
		}
		*draft = *next
		return nil
	})
	h.respond(c, s, err)
}

// ApplyPatch 应用 AI 工具调用返回的补丁批次，同一 call_id 只应用一次。
func (h *EditorHandler) ApplyPatch(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.consumer.Apply(c.Request.Context(), s.ID(), s, req.CallID, req.Operations)
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "state": stateOf(s)})
}

func (h *EditorHandler) Undo(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, s, s.Undo())
}

func (h *EditorHandler) Redo(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, s, s.Redo())
}

func (h *EditorHandler) AddPage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, s, layout.NewAssigner(s).AddPage())
}

func (h *EditorHandler) DeletePage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		BadRequest(c, "invalid page index")
		return
	}
	h.respond(c, s, layout.NewAssigner(s).DeletePage(page))
}

func (h *EditorHandler) ToggleFullWidth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		BadRequest(c, "invalid page index")
		return
	}
	var req fullWidthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respond(c, s, layout.NewAssigner(s).ToggleFullWidth(page, *req.FullWidth))
}

// DropSection 处理拖放结束事件。无法解析的拖放不报错，返回 changed=false。
func (h *EditorHandler) DropSection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	changed, err := layout.NewAssigner(s).Drop(req.Active, req.Over)
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed, "state": stateOf(s)})
}

func (h *EditorHandler) ReorderSection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	loc := layout.Location{Page: req.Page, Column: req.Column}
	h.respond(c, s, layout.NewAssigner(s).Reorder(loc, req.From, req.To))
}

// ItemTargets 返回条目可以移入的板块。
func (h *EditorHandler) ItemTargets(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	targets, err := sections.NewMover(s).Targets(c.Param("item"), c.Param("section"))
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *EditorHandler) MoveItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req moveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respond(c, s, sections.NewMover(s).Move(req.ItemID, req.Source, req.Target))
}

func (h *EditorHandler) AddCustomSection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req customSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	id, err := sections.NewMover(s).AddCustomSection(req.Type, req.Title)
	if err != nil {
		EditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "state": stateOf(s)})
}

func (h *EditorHandler) RemoveCustomSection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, s, sections.NewMover(s).RemoveCustomSection(c.Param("section")))
}
