// Package interfaces contains compile-time interface implementation
// checks. These ensure that concrete types satisfy their consumer-side
// interfaces, catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...
package interfaces

import (
	"github.com/IslamGh2004/sawtlib/internal/audit"
	"github.com/IslamGh2004/sawtlib/internal/collection"
	"github.com/IslamGh2004/sawtlib/internal/database/authors"
	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/categories"
	"github.com/IslamGh2004/sawtlib/internal/database/favorites"
	"github.com/IslamGh2004/sawtlib/internal/database/notifications"
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/database/settings"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
	"github.com/IslamGh2004/sawtlib/internal/exporters"
	"github.com/IslamGh2004/sawtlib/internal/http"
	"github.com/IslamGh2004/sawtlib/internal/scheduler"
	"github.com/IslamGh2004/sawtlib/internal/services"
	"github.com/IslamGh2004/sawtlib/internal/storage"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.CategoryStore = (*categories.Repository)(nil)
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.UserStore = (*users.Repository)(nil)
var _ http.FavoriteStore = (*favorites.Repository)(nil)
var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.NotificationStore = (*notifications.Repository)(nil)
var _ http.SettingStore = (*settings.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.StatsStore = (*services.StatsService)(nil)
var _ http.Auditor = (*audit.Service)(nil)
var _ scheduler.Pruner = (*audit.Service)(nil)

// CSV export sources
var _ exporters.BookSource = (*books.Repository)(nil)
var _ exporters.UserSource = (*users.Repository)(nil)
var _ exporters.CategorySource = (*categories.Repository)(nil)
var _ exporters.AuthorSource = (*authors.Repository)(nil)
var _ exporters.ProgressSource = (*progress.Repository)(nil)

// =============================================================================
// Storage
// =============================================================================

var _ storage.Store = (*storage.LocalStore)(nil)
var _ storage.Store = (*storage.S3Store)(nil)

// =============================================================================
// Collections
// =============================================================================

var _ collection.Notifier = collection.NopNotifier{}
var _ collection.Notifier = (collection.FuncNotifier)(nil)
