package controllers

import (
	"net/http"

	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Catalog *services.CatalogService
}

// @Summary Get all categories
// @Description Get list of all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    ctrl.Catalog.Categories(),
	})
}

// @Summary Get category by ID
// @Description Get a single category with the products filed under it
// @Tags Categories
// @Produce json
// @Param id path string true "Category slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	cat, err := ctrl.Catalog.Category(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Category not found"})
		return
	}

	products := ctrl.Catalog.Search(models.ProductFilter{Category: cat.Name})
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category retrieved",
		Data: gin.H{
			"category": cat,
			"products": products,
		},
	})
}
