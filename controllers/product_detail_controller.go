package controllers

import (
	"net/http"
	"strconv"

	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

type ProductDetailController struct {
	Catalog *services.CatalogService
}

// @Summary Get product detail with recommendations
// @Description Get complete product information, its markdown and other products of the same category
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/detail [get]
func (ctrl *ProductDetailController) GetProductDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}

	p, err := ctrl.Catalog.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	recs, err := ctrl.Catalog.Related(id, services.RelatedCount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product detail retrieved",
		Data: models.ProductDetail{
			Product:         p,
			DiscountPercent: p.DiscountPercent(),
			Recommendations: recs,
		},
	})
}
