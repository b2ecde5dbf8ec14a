package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// CategoriesController serves the category list and the admin CRUD.
type CategoriesController struct {
	categories CategoryStore
	auditor    Auditor
}

func NewCategoriesController(categories CategoryStore, auditor Auditor) *CategoriesController {
	return &CategoriesController{categories: categories, auditor: auditor}
}

// List returns all categories ordered by name, each with its derived
// published book count.
func (controller *CategoriesController) List(c *gin.Context) {
	categories, err := controller.categories.GetAllCategories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// Get returns one category by ID.
func (controller *CategoriesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := controller.categories.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create adds a category.
func (controller *CategoriesController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	category := &entities.Category{Name: req.Name, Description: req.Description}
	if err := controller.categories.CreateCategory(category); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventCategory, "create", req.Name, 0, err)
		respondInternalError(c, err, "create category")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventCategory, "create", category.Name, category.ID, nil)
	respondCreated(c, category)
}

type categoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Update patches a category's name or description.
func (controller *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req categoryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid category payload")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	category, err := controller.categories.UpdateCategory(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "update category")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventCategory, "update", category.Name, id, nil)
	c.JSON(http.StatusOK, category)
}

// Delete removes a category. Books keep existing with their category
// reference cleared.
func (controller *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.categories.GetCategoryByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "delete category")
		return
	}

	if err := controller.categories.DeleteCategory(id); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventCategory, "delete", "", id, err)
		respondInternalError(c, err, "delete category")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventCategory, "delete", "", id, nil)
	respondSuccess(c, "category deleted")
}
