package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FavoritesController manages a listener's favorite books.
type FavoritesController struct {
	favorites FavoriteStore
	books     BookStore
}

func NewFavoritesController(favorites FavoriteStore, books BookStore) *FavoritesController {
	return &FavoritesController{favorites: favorites, books: books}
}

type toggleFavoriteRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// Toggle flips the favorite state for (user, book) in one atomic
// operation and reports the resulting state. Repeating the call
// restores the previous state.
func (controller *FavoritesController) Toggle(c *gin.Context) {
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book_id is required")
		return
	}

	if _, err := controller.books.GetBookByID(req.BookID); err != nil {
		respondNotFound(c, "book")
		return
	}

	favorited, err := controller.favorites.Toggle(GetUserID(c), req.BookID)
	if err != nil {
		respondInternalError(c, err, "toggle favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"book_id": req.BookID, "favorited": favorited})
}

// List returns the user's favorites with their books preloaded.
func (controller *FavoritesController) List(c *gin.Context) {
	favorites, err := controller.favorites.GetFavoritesForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

// Status reports whether one book is favorited by the user.
func (controller *FavoritesController) Status(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorited, err := controller.favorites.IsFavorite(GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "favorite status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"book_id": id, "favorited": favorited})
}
