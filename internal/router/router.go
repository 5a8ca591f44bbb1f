package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/teamboard/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Profile   *apiHandler.ProfileHandler
	DailyTask *apiHandler.DailyTaskHandler
	Project   *apiHandler.ProjectHandler
	Task      *apiHandler.TaskHandler
	Calendar  *apiHandler.CalendarHandler
	Mindmap   *apiHandler.MindmapHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Profile
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.GET("/api/v1/users", authMiddleware(handlers.Profile.ListUsers))

	// Recurring tasks
	r.GET("/api/v1/daily-tasks", authMiddleware(handlers.DailyTask.List))
	r.POST("/api/v1/daily-tasks", authMiddleware(handlers.DailyTask.Create))
	r.GET("/api/v1/daily-tasks/due", authMiddleware(handlers.DailyTask.Due))
	r.GET("/api/v1/daily-tasks/{id}", authMiddleware(handlers.DailyTask.Get))
	r.PUT("/api/v1/daily-tasks/{id}", authMiddleware(handlers.DailyTask.Update))
	r.DELETE("/api/v1/daily-tasks/{id}", authMiddleware(handlers.DailyTask.Delete))
	r.POST("/api/v1/daily-tasks/{id}/toggle", authMiddleware(handlers.DailyTask.Toggle))
	r.POST("/api/v1/daily-tasks/{id}/complete", authMiddleware(handlers.DailyTask.Complete))
	r.GET("/api/v1/daily-tasks/{id}/completions", authMiddleware(handlers.DailyTask.Completions))
	r.GET("/api/v1/daily-tasks/{id}/streak", authMiddleware(handlers.DailyTask.Streak))
	r.GET("/api/v1/daily-tasks/{id}/rate", authMiddleware(handlers.DailyTask.Rate))

	// Projects and categories
	r.GET("/api/v1/projects", authMiddleware(handlers.Project.List))
	r.POST("/api/v1/projects", authMiddleware(handlers.Project.Create))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.Get))
	r.PUT("/api/v1/projects/{id}", authMiddleware(handlers.Project.Update))
	r.DELETE("/api/v1/projects/{id}", authMiddleware(handlers.Project.Delete))
	r.GET("/api/v1/projects/{id}/members", authMiddleware(handlers.Project.Members))
	r.POST("/api/v1/projects/{id}/members", authMiddleware(handlers.Project.AddMember))
	r.DELETE("/api/v1/projects/{id}/members/{userId}", authMiddleware(handlers.Project.RemoveMember))
	r.GET("/api/v1/projects/{id}/categories", authMiddleware(handlers.Project.Categories))
	r.POST("/api/v1/categories", authMiddleware(handlers.Project.CreateCategory))
	r.PUT("/api/v1/categories/{id}", authMiddleware(handlers.Project.UpdateCategory))
	r.DELETE("/api/v1/categories/{id}", authMiddleware(handlers.Project.DeleteCategory))

	// Kanban tasks
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/api/v1/tasks/my", authMiddleware(handlers.Task.MyTasks))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Delete))
	r.GET("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Task.Comments))
	r.POST("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Task.AddComment))
	r.GET("/api/v1/tasks/{id}/activities", authMiddleware(handlers.Task.Activities))
	r.GET("/api/v1/tasks/{id}/dependencies", authMiddleware(handlers.Task.Dependencies))
	r.POST("/api/v1/tasks/{id}/dependencies", authMiddleware(handlers.Task.AddDependency))
	r.DELETE("/api/v1/tasks/{id}/dependencies/{dependsOnId}", authMiddleware(handlers.Task.RemoveDependency))

	// Calendar
	r.GET("/api/v1/calendar", authMiddleware(handlers.Calendar.Feed))

	// Mindmap
	r.GET("/api/v1/mindmap/projects", authMiddleware(handlers.Mindmap.ListProjects))
	r.POST("/api/v1/mindmap/projects", authMiddleware(handlers.Mindmap.CreateProject))
	r.PUT("/api/v1/mindmap/projects/{id}", authMiddleware(handlers.Mindmap.UpdateProject))
	r.DELETE("/api/v1/mindmap/projects/{id}", authMiddleware(handlers.Mindmap.DeleteProject))
	r.GET("/api/v1/mindmap/data", authMiddleware(handlers.Mindmap.Graph))
	r.POST("/api/v1/mindmap/nodes", authMiddleware(handlers.Mindmap.CreateNode))
	r.PUT("/api/v1/mindmap/nodes/{id}", authMiddleware(handlers.Mindmap.UpdateNode))
	r.DELETE("/api/v1/mindmap/nodes/{id}", authMiddleware(handlers.Mindmap.DeleteNode))
	r.GET("/api/v1/mindmap/nodes/{id}/children", authMiddleware(handlers.Mindmap.Children))
	r.GET("/api/v1/mindmap/nodes/{id}/parents", authMiddleware(handlers.Mindmap.Parents))
	r.POST("/api/v1/mindmap/connections", authMiddleware(handlers.Mindmap.Connect))
	r.DELETE("/api/v1/mindmap/connections/{id}", authMiddleware(handlers.Mindmap.Disconnect))

	return r
}
