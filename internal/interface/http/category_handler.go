package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
	"github.com/kumawatvinit/ShopSpot/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CatalogService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create POST /create-category (admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Name is required", validation.ToDetails(err))
		return
	}

	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err, "Error in category creation")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": cat}, "Category created successfully", nil)
}

// Update PUT /update-category/:id (admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Name is required", validation.ToDetails(err))
		return
	}

	cat, err := h.Svc.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err, "Error in category updation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat}, cat.Name+" updated successfully", nil)
}

// List GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err, "Error in getting categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": cats}, "Categories fetched successfully", nil)
}

// Get GET /single-category/:slug
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Svc.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "Error in getting category")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat}, "Category fetched successfully", nil)
}

// Delete DELETE /delete-category/:id (admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Error in deleting category")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Category deleted successfully", nil)
}
