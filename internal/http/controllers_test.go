package http

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/audit"
	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/config"
	"github.com/IslamGh2004/sawtlib/internal/database"
	auditrepo "github.com/IslamGh2004/sawtlib/internal/database/audit"
)

func setupControllerTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func testAuditor(db *database.Database) *audit.Service {
	return audit.NewService(auditrepo.NewRepository(db.DB))
}

func testAuthConfig() config.Auth {
	return config.Auth{
		BcryptCost:       4,
		TokenSecret:      "test-token-secret",
		TokenExpiry:      time.Hour,
		MaxLoginAttempts: 5,
		RateLimitWindow:  15 * time.Minute,
		LockoutDuration:  30 * time.Minute,
	}
}

// asUser simulates an authenticated session so handlers can be tested
// without running the full session middleware chain.
func asUser(id uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, id)
		c.Set(auth.ContextKeyIsAdmin, isAdmin)
		c.Next()
	}
}
