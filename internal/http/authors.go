package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// AuthorsController manages the curated author directory. Books refer
// to authors by free-text name, so the directory is presentational and
// book counts are derived by name match.
type AuthorsController struct {
	authors AuthorStore
	auditor Auditor
}

func NewAuthorsController(authors AuthorStore, auditor Auditor) *AuthorsController {
	return &AuthorsController{authors: authors, auditor: auditor}
}

func (controller *AuthorsController) List(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		authors, err := controller.authors.SearchAuthors(query)
		if err != nil {
			respondInternalError(c, err, "search authors")
			return
		}
		c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
		return
	}

	authors, err := controller.authors.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

func (controller *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.authors.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

type authorRequest struct {
	Name      string `json:"name" binding:"required"`
	Biography string `json:"biography"`
	ImageURL  string `json:"image_url"`
}

func (controller *AuthorsController) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	author := &entities.Author{Name: req.Name, Biography: req.Biography, ImageURL: req.ImageURL}
	if err := controller.authors.CreateAuthor(author); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventAuthor, "create", req.Name, 0, err)
		respondInternalError(c, err, "create author")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventAuthor, "create", author.Name, author.ID, nil)
	respondCreated(c, author)
}

type authorPatchRequest struct {
	Name      *string `json:"name"`
	Biography *string `json:"biography"`
	ImageURL  *string `json:"image_url"`
}

func (controller *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req authorPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid author payload")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Biography != nil {
		fields["biography"] = *req.Biography
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	author, err := controller.authors.UpdateAuthor(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "update author")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventAuthor, "update", author.Name, id, nil)
	c.JSON(http.StatusOK, author)
}

func (controller *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.authors.GetAuthorByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}

	if err := controller.authors.DeleteAuthor(id); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventAuthor, "delete", "", id, err)
		respondInternalError(c, err, "delete author")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventAuthor, "delete", "", id, nil)
	respondSuccess(c, "author deleted")
}
