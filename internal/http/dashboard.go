package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// DashboardController serves the get-admin-dashboard-data function
// endpoint. Every figure is a real aggregate over the database.
type DashboardController struct {
	stats StatsStore
	users UserStore
}

func NewDashboardController(stats StatsStore, users UserStore) *DashboardController {
	return &DashboardController{stats: stats, users: users}
}

type dashboardStats struct {
	TotalBooks           int64 `json:"total_books"`
	PublishedBooks       int64 `json:"published_books"`
	DraftBooks           int64 `json:"draft_books"`
	ArchivedBooks        int64 `json:"archived_books"`
	TotalCategories      int64 `json:"total_categories"`
	TotalAuthors         int64 `json:"total_authors"`
	TotalUsers           int64 `json:"total_users"`
	NewUsersThisWeek     int64 `json:"new_users_this_week"`
	NewUsersThisMonth    int64 `json:"new_users_this_month"`
	TotalFavorites       int64 `json:"total_favorites"`
	CatalogDurationHours int64 `json:"catalog_duration_hours"`
	ListenedHours        int64 `json:"listened_hours"`
}

// GetData dispatches on the type query parameter: "users" returns the
// account listing, "stats" the aggregate counters.
func (controller *DashboardController) GetData(c *gin.Context) {
	switch c.Query("type") {
	case "users":
		controller.usersData(c)
	case "stats":
		controller.statsData(c)
	default:
		respondBadRequest(c, "type must be \"users\" or \"stats\"")
	}
}

func (controller *DashboardController) usersData(c *gin.Context) {
	users, err := controller.users.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "dashboard users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (controller *DashboardController) statsData(c *gin.Context) {
	var stats dashboardStats
	var err error

	if stats.TotalBooks, err = controller.stats.CountBooks(); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}

	byStatus, err := controller.stats.CountBooksByStatus()
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	stats.PublishedBooks = byStatus[entities.BookStatusPublished]
	stats.DraftBooks = byStatus[entities.BookStatusDraft]
	stats.ArchivedBooks = byStatus[entities.BookStatusArchived]

	if stats.TotalCategories, err = controller.stats.CountCategories(); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	if stats.TotalAuthors, err = controller.stats.CountAuthors(); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	if stats.TotalUsers, err = controller.stats.CountUsers(); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}

	now := time.Now().UTC()
	if stats.NewUsersThisWeek, err = controller.stats.CountUsersSince(now.AddDate(0, 0, -7)); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	if stats.NewUsersThisMonth, err = controller.stats.CountUsersSince(now.AddDate(0, -1, 0)); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	if stats.TotalFavorites, err = controller.stats.CountFavorites(); err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}

	catalogSeconds, err := controller.stats.TotalDurationSeconds()
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	stats.CatalogDurationHours = catalogSeconds / 3600

	listenedSeconds, err := controller.stats.TotalListenedSeconds()
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	stats.ListenedHours = listenedSeconds / 3600

	c.JSON(http.StatusOK, stats)
}
