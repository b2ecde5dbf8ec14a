package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/demo"
	"github.com/IslamGh2004/sawtlib/internal/exporters"
	"github.com/IslamGh2004/sawtlib/internal/storage"
)

// RouterConfig carries every dependency the router wires into its
// controllers. Receiving one struct keeps the signature stable as
// endpoints are added.
type RouterConfig struct {
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool
	DemoMode       *demo.Middleware

	Books         BookStore
	Categories    CategoryStore
	Authors       AuthorStore
	Users         UserStore
	Favorites     FavoriteStore
	Progress      ProgressStore
	Notifications NotificationStore
	Settings      SettingStore
	Stats         StatsStore
	Auditor       Auditor

	MediaStore storage.Store
	MediaDir   string // served under /media when the local backend is active
	Exporter   *exporters.CSVExporter

	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	if cfg.DemoMode != nil {
		router.Use(cfg.DemoMode.Handler())
	}

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Users, cfg.Auditor)
	booksController := NewBooksController(cfg.Books, cfg.Categories, cfg.Auditor)
	categoriesController := NewCategoriesController(cfg.Categories, cfg.Auditor)
	authorsController := NewAuthorsController(cfg.Authors, cfg.Auditor)
	usersController := NewUsersController(cfg.Users, cfg.AuthService, cfg.Auditor)
	favoritesController := NewFavoritesController(cfg.Favorites, cfg.Books)
	progressController := NewProgressController(cfg.Progress, cfg.Books)
	notificationsController := NewNotificationsController(cfg.Notifications, cfg.Auditor)
	settingsController := NewSettingsController(cfg.Settings)
	dashboardController := NewDashboardController(cfg.Stats, cfg.Users)
	uploadsController := NewUploadsController(cfg.MediaStore, cfg.Books, cfg.Auditor)
	exportController := NewExportController(cfg.Exporter, cfg.Auditor)
	auditController := NewAuditController(cfg.Auditor)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public catalog and auth endpoints.
	public := router.Group("/api")
	{
		public.POST("/auth/sign-up", authController.SignUp)
		public.POST("/auth/sign-in", authController.SignIn)
		public.POST("/auth/admin-sign-in", authController.AdminSignIn)
		public.POST("/auth/sign-out", authController.SignOut)

		public.GET("/books", booksController.ListPublished)
		public.GET("/books/search", booksController.Search)
		public.GET("/books/:id", booksController.GetBook)

		public.GET("/categories", categoriesController.List)
		public.GET("/categories/:id", categoriesController.Get)
		public.GET("/categories/:id/books", booksController.ListByCategory)

		public.GET("/authors", authorsController.List)
		public.GET("/authors/:id", authorsController.Get)
	}

	// Endpoints that need a signed-in listener.
	user := router.Group("/api", cfg.AuthMiddleware.RequireUser())
	{
		user.GET("/me", authController.Me)
		user.PATCH("/me", authController.UpdateProfile)

		user.POST("/favorites/toggle", favoritesController.Toggle)
		user.GET("/favorites", favoritesController.List)
		user.GET("/favorites/:id/status", favoritesController.Status)

		user.PUT("/progress", progressController.Save)
		user.GET("/progress", progressController.List)
		user.GET("/progress/:id", progressController.Get)
		user.DELETE("/progress/:id", progressController.Delete)

		user.GET("/settings/player", settingsController.GetPlayerSettings)
		user.PUT("/settings/player", settingsController.SavePlayerSettings)
		user.GET("/settings/profile-draft", settingsController.GetProfileDraft)
		user.PUT("/settings/profile-draft", settingsController.SaveProfileDraft)
		user.DELETE("/settings/profile-draft", settingsController.DeleteProfileDraft)

		user.GET("/notifications", notificationsController.List)
		user.POST("/notifications/:id/read", notificationsController.MarkRead)
	}

	// Admin dashboard endpoints.
	admin := router.Group("/api/admin", cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("/token", authController.Token)

		admin.GET("/books", booksController.ListAll)
		admin.POST("/books", booksController.CreateBook)
		admin.PATCH("/books/:id", booksController.UpdateBook)
		admin.DELETE("/books/:id", booksController.DeleteBook)

		admin.POST("/categories", categoriesController.Create)
		admin.PATCH("/categories/:id", categoriesController.Update)
		admin.DELETE("/categories/:id", categoriesController.Delete)

		admin.POST("/authors", authorsController.Create)
		admin.PATCH("/authors/:id", authorsController.Update)
		admin.DELETE("/authors/:id", authorsController.Delete)

		admin.GET("/users", usersController.List)
		admin.GET("/users/:id", usersController.Get)
		admin.POST("/users/:id/ban", usersController.SetBanned)
		admin.POST("/users/:id/admin", usersController.SetAdmin)
		admin.DELETE("/users/:id", usersController.Delete)

		admin.GET("/notifications", notificationsController.ListAll)
		admin.POST("/notifications", notificationsController.Send)
		admin.DELETE("/notifications/:id", notificationsController.Delete)

		admin.GET("/audit", auditController.List)
		admin.GET("/export/:resource", exportController.Export)
	}

	// Function endpoints invoked by the dashboard with a bearer token.
	functions := router.Group("/api/functions", cfg.AuthMiddleware.RequireAdmin())
	{
		functions.POST("/create-user", usersController.CreateUser)
		functions.POST("/upload-book-files", uploadsController.UploadBookFiles)
		functions.GET("/get-admin-dashboard-data", dashboardController.GetData)
	}

	return router
}
