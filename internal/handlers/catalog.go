// internal/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/littlethreads/storefront/internal/services"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Home renders the storefront landing page with every product and its
// resolved total stock.
func (h *CatalogHandler) Home(c *gin.Context) {
	products, err := h.catalog.ListProducts()
	if err != nil {
		serviceError(c, err)
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Products": products,
	})
}

// ProductDetail renders one product page with its shuffled gallery and
// purchasable variants.
func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		serviceError(c, services.ErrProductNotFound)
		return
	}

	detail, err := h.catalog.GetProductDetail(uint(id))
	if err != nil {
		serviceError(c, err)
		return
	}

	render(c, http.StatusOK, "product.html", gin.H{
		"Product":  detail.Product,
		"Gallery":  detail.Gallery,
		"Variants": detail.Variants,
	})
}
