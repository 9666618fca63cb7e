package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeEditor/internal/database"
	"resumeEditor/internal/editor"
	"resumeEditor/internal/patch"
)

// Dependencies 汇总路由所需的服务。
type Dependencies struct {
	Repo           *database.ResumeRepository
	Sessions       *editor.Manager
	Patches        *patch.Consumer
	Redis          *redis.Client
	Logger         *slog.Logger
	AllowedOrigins []string
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。Redis 为空时不注册 WebSocket 端点。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	resumeHandler := NewResumeHandler(deps.Repo, deps.Sessions)
	editorHandler := NewEditorHandler(deps.Sessions, deps.Patches)

	v1 := router.Group("/v1")
	{
		if deps.Redis != nil {
			wsHandler := NewWsHandler(deps.Redis, deps.Logger, deps.AllowedOrigins)
			v1.GET("/ws", wsHandler.HandleConnection)
		}

		resumeGroup := v1.Group("/resumes")
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.PATCH("/:id", resumeHandler.RenameResume)
			resumeGroup.PUT("/:id/lock", resumeHandler.LockResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
		}

		editorGroup := v1.Group("/editor/:id")
		{
			editorGroup.POST("/open", editorHandler.Open)
			editorGroup.DELETE("", editorHandler.Close)
			editorGroup.GET("", editorHandler.State)
			editorGroup.GET("/preview", editorHandler.Preview)
			editorGroup.PUT("/document", editorHandler.ReplaceDocument)
			editorGroup.POST("/patches", editorHandler.ApplyPatch)
			editorGroup.POST("/undo", editorHandler.Undo)
			editorGroup.POST("/redo", editorHandler.Redo)

			editorGroup.POST("/pages", editorHandler.AddPage)
			editorGroup.DELETE("/pages/:page", editorHandler.DeletePage)
			editorGroup.PUT("/pages/:page/full-width", editorHandler.ToggleFullWidth)
			editorGroup.POST("/layout/drop", editorHandler.DropSection)
			editorGroup.POST("/layout/reorder", editorHandler.ReorderSection)

			editorGroup.GET("/sections/:section/items/:item/targets", editorHandler.ItemTargets)
			editorGroup.POST("/items/move", editorHandler.MoveItem)
			editorGroup.POST("/custom-sections", editorHandler.AddCustomSection)
			editorGroup.DELETE("/custom-sections/:section", editorHandler.RemoveCustomSection)
		}
	}
}
