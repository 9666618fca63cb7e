package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"resumeEditor/internal/database"
	"resumeEditor/internal/editor"
	"resumeEditor/internal/errcode"
	"resumeEditor/internal/layout"
	"resumeEditor/internal/patch"
	"resumeEditor/internal/sections"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithCode 返回带业务错误码的错误响应。
func ErrorWithCode(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// EditorError 将编辑流程中的错误映射为 HTTP 状态码与业务错误码。
func EditorError(c *gin.Context, err error) {
	var (
		invalid *patch.InvalidPatchError
		fields  validator.ValidationErrors
	)
	switch {
	case errors.Is(err, editor.ErrLocked):
		ErrorWithCode(c, http.StatusLocked, errcode.ResumeLocked, err.Error())
	case errors.As(err, &invalid):
		body := gin.H{"error": invalid.Error(), "code": errcode.InvalidPatch}
		if invalid.Index >= 0 {
			body["index"] = invalid.Index
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &fields):
		ErrorWithCode(c, http.StatusUnprocessableEntity, errcode.InvalidPatch, fields.Error())
	case errors.Is(err, editor.ErrNothingToUndo), errors.Is(err, editor.ErrNothingToRedo):
		ErrorWithCode(c, http.StatusConflict, errcode.NothingToUndo, err.Error())
	case errors.Is(err, layout.ErrLastPage),
		errors.Is(err, layout.ErrPageOutOfRange),
		errors.Is(err, layout.ErrIndexOutOfRange),
		errors.Is(err, layout.ErrInvalidColumn),
		errors.Is(err, layout.ErrPartition):
		ErrorWithCode(c, http.StatusUnprocessableEntity, errcode.LayoutRejected, err.Error())
	case errors.Is(err, sections.ErrIncompatible), errors.Is(err, sections.ErrSameSection):
		ErrorWithCode(c, http.StatusUnprocessableEntity, errcode.Incompatible, err.Error())
	case errors.Is(err, sections.ErrUnknownType), errors.Is(err, sections.ErrBuiltinSection):
		ErrorWithCode(c, http.StatusBadRequest, errcode.Incompatible, err.Error())
	case errors.Is(err, sections.ErrItemNotFound),
		errors.Is(err, sections.ErrSectionNotFound),
		errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrNoDocument),
		errors.Is(err, database.ErrResumeNotFound):
		ErrorWithCode(c, http.StatusNotFound, errcode.ResourceMissing, err.Error())
	default:
		ErrorWithCode(c, http.StatusInternalServerError, errcode.SystemError, "internal error")
	}
}
