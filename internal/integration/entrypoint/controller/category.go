package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// CategoryController serves the closed category lists.
type CategoryController struct{}

// NewCategoryController creates a new category controller instance.
func NewCategoryController() *CategoryController {
	return &CategoryController{}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToCategoriesResponse())
}
