package controllers

import (
	"net/http"
	"strconv"

	"lumina-store/middleware"
	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Catalog *services.CatalogService
}

// @Summary Get cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    sess.Cart.View(),
	})
}

// @Summary Add item to cart
// @Description Merges into the line with the same product, color and size; quantity below 1 counts as 1
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Cart item"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.Catalog.Get(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	sess.Cart.AddItem(product, req.Quantity, req.Color, req.Size)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    sess.Cart.View(),
	})
}

// @Summary Update item quantity
// @Description Sets the quantity on every line of the product; 0 or less removes them
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{productId} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondBindError(c, err)
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	sess.Cart.UpdateQuantity(productID, req.Quantity)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    sess.Cart.View(),
	})
}

// @Summary Remove item from cart
// @Description Without color/size query parameters every variant of the product is removed
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Param color query string false "Remove only the line with this color"
// @Param size query string false "Remove only the line with this size"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	color, hasColor := c.GetQuery("color")
	size, hasSize := c.GetQuery("size")
	if hasColor || hasSize {
		sess.Cart.RemoveLine(models.LineKey{ProductID: productID, Color: color, Size: size})
	} else {
		sess.Cart.RemoveItem(productID)
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    sess.Cart.View(),
	})
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	sess.Cart.Clear()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    sess.Cart.View(),
	})
}
