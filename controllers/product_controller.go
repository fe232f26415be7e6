package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Catalog *services.CatalogService
}

// @Summary Get all products
// @Description Search, filter and sort the catalog
// @Tags Products
// @Produce json
// @Param q query string false "Search text over name, description and category"
// @Param category query string false "Exact category name"
// @Param min_price query number false "Minimum price" default(0)
// @Param max_price query number false "Maximum price" default(1000)
// @Param sort query string false "featured, newest, price-low, price-high, rating"
// @Param filter query string false "sale or new"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid query parameters",
			Error:   err.Error(),
		})
		return
	}
	filter.Sort = services.NormalizeSort(filter.Sort)

	products := ctrl.Catalog.Search(filter)
	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.ListMeta{
			Total:    len(products),
			Sort:     filter.Sort,
			Category: filter.Category,
			Query:    filter.Query,
		},
	})
}

// @Summary Get featured products
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/featured [get]
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Featured products retrieved",
		Data:    ctrl.Catalog.Featured(services.FeaturedCount),
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}

	product, err := ctrl.Catalog.Get(id)
	if errors.Is(err, services.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}
