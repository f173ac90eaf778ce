package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/interfaces/http/handler"
)

// APIHandlers holds the handlers mounted under the API prefix
type APIHandlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Client   *handler.ClientHandler
	Case     *handler.CaseHandler
	Deadline *handler.DeadlineHandler
	Document *handler.DocumentHandler
	AI       *handler.AIHandler
}

// APIMiddleware is the per-route middleware of the API
type APIMiddleware struct {
	// Auth runs, in order, in front of every route except token and register
	Auth []gin.HandlerFunc
	// AI runs after Auth on the /ai routes
	AI []gin.HandlerFunc
}

// RegisterAPI registers the LawAI domain groups on r
func RegisterAPI(r *Router, h APIHandlers, mw APIMiddleware) *Router {
	protected := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mw.Auth...), hf)
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/token", h.Auth.Token)
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.GET("/user", protected(h.Auth.CurrentUser)...)
	authRoutes.POST("/logout", protected(h.Auth.Logout)...)

	userRoutes := NewDomainGroup("users", "/users").Use(mw.Auth...)
	userRoutes.GET("/:id", h.User.GetByID)
	userRoutes.PUT("/:id", h.User.Update)

	clientRoutes := NewDomainGroup("clients", "/clients").Use(mw.Auth...)
	clientRoutes.GET("", h.Client.List)
	clientRoutes.POST("", h.Client.Create)
	clientRoutes.GET("/:id", h.Client.GetByID)
	clientRoutes.PUT("/:id", h.Client.Update)
	clientRoutes.DELETE("/:id", h.Client.Delete)

	caseRoutes := NewDomainGroup("cases", "/cases").Use(mw.Auth...)
	caseRoutes.GET("", h.Case.List)
	caseRoutes.POST("", h.Case.Create)
	caseRoutes.GET("/options", h.Case.Options)
	caseRoutes.GET("/stats", h.Case.Stats)
	caseRoutes.GET("/:id", h.Case.GetByID)
	caseRoutes.PUT("/:id", h.Case.Update)
	caseRoutes.DELETE("/:id", h.Case.Delete)

	deadlineRoutes := NewDomainGroup("deadlines", "/deadlines").Use(mw.Auth...)
	deadlineRoutes.GET("", h.Deadline.List)
	deadlineRoutes.POST("", h.Deadline.Create)
	deadlineRoutes.GET("/upcoming", h.Deadline.Upcoming)
	deadlineRoutes.GET("/stats", h.Deadline.Stats)
	deadlineRoutes.GET("/by-case/:caseId", h.Deadline.ByCase)
	deadlineRoutes.GET("/:id", h.Deadline.GetByID)
	deadlineRoutes.PUT("/:id", h.Deadline.Update)
	deadlineRoutes.PUT("/:id/complete", h.Deadline.Complete)
	deadlineRoutes.DELETE("/:id", h.Deadline.Delete)

	documentRoutes := NewDomainGroup("documents", "/documents").Use(mw.Auth...)
	documentRoutes.GET("", h.Document.List)
	documentRoutes.POST("", h.Document.Create)
	documentRoutes.GET("/:id", h.Document.GetByID)
	documentRoutes.PUT("/:id", h.Document.Update)
	documentRoutes.DELETE("/:id", h.Document.Delete)
	documentRoutes.GET("/:id/download", h.Document.Download)
	documentRoutes.GET("/:id/pdf", h.Document.PDF)

	aiRoutes := NewDomainGroup("ai", "/ai").Use(mw.Auth...).Use(mw.AI...)
	aiRoutes.POST("/analyze-document", h.AI.AnalyzeDocument)
	aiRoutes.POST("/legal-search", h.AI.LegalSearch)
	aiRoutes.POST("/generate-document", h.AI.GenerateDocument)
	aiRoutes.GET("/test-connection", h.AI.TestConnection)
	aiRoutes.POST("/answer-legal-questions", h.AI.AnswerLegalQuestions)

	return r.Register(authRoutes).
		Register(userRoutes).
		Register(clientRoutes).
		Register(caseRoutes).
		Register(deadlineRoutes).
		Register(documentRoutes).
		Register(aiRoutes)
}
