// internal/handlers/admin.go
package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/middleware"
	"github.com/littlethreads/storefront/internal/services"
	"github.com/littlethreads/storefront/internal/utils"
)

type AdminHandler struct {
	catalog *services.CatalogService
	orders  *services.OrderService
	storage *services.StorageService
	cfg     *config.Config
}

func NewAdminHandler(catalog *services.CatalogService, orders *services.OrderService, storage *services.StorageService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		orders:  orders,
		storage: storage,
		cfg:     cfg,
	}
}

func (h *AdminHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "admin_login.html", nil)
}

// Login checks the shared dashboard password. An unset password keeps
// the dashboard closed rather than open.
func (h *AdminHandler) Login(c *gin.Context) {
	password := c.PostForm("password")
	expected := h.cfg.Admin.Password

	if expected == "" || subtle.ConstantTimeCompare([]byte(password), []byte(expected)) != 1 {
		utils.UnauthorizedResponse(c, "invalid password")
		return
	}

	token, err := utils.GenerateAdminToken(h.cfg.Session.TTLHours)
	if err != nil {
		serviceError(c, err)
		return
	}
	setSessionCookie(c, middleware.AdminCookie, token, h.cfg.Session.TTLHours)

	redirect(c, "/admin")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, middleware.AdminCookie)
	redirect(c, "/admin/login")
}

// Dashboard lists every product with its resolved total stock.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	products, err := h.catalog.ListProducts()
	if err != nil {
		serviceError(c, err)
		return
	}

	render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Products": products,
	})
}

func (h *AdminHandler) NewProductPage(c *gin.Context) {
	render(c, http.StatusOK, "admin_new.html", nil)
}

// CreateProduct handles the multipart product form: the row is created
// first so the uploads have a key prefix, then images are stored and
// attached.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "invalid form submission")
		return
	}

	title := formValue(form.Value, "title")
	if title == "" {
		utils.BadRequestResponse(c, "title is required")
		return
	}

	price, err := strconv.Atoi(formValue(form.Value, "price"))
	if err != nil || price < 0 {
		utils.BadRequestResponse(c, "price must be a non-negative number")
		return
	}

	stock := 0
	if raw := formValue(form.Value, "stock"); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil || stock < 0 {
			utils.BadRequestResponse(c, "stock must be a non-negative number")
			return
		}
	}

	sizes := formValues(form.Value, "opt_size")
	colors := formValues(form.Value, "opt_color")
	stocks := formValues(form.Value, "opt_stock")

	variants := make([]services.VariantInput, 0, len(sizes))
	for i := range sizes {
		v := services.VariantInput{Size: sizes[i]}
		if i < len(colors) {
			v.Color = colors[i]
		}
		// A row without a parseable stock figure is a half-filled form
		// row, not a stock-0 option.
		if i >= len(stocks) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(stocks[i]))
		if err != nil {
			continue
		}
		v.Stock = n
		variants = append(variants, v)
	}

	product, err := h.catalog.CreateProduct(services.CreateProductInput{
		Title:       title,
		Price:       price,
		Description: formValue(form.Value, "description"),
		Stock:       stock,
		Variants:    variants,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	files := form.File["images"]
	if max := h.cfg.Storage.MaxImagesPerUpload; max > 0 && len(files) > max {
		files = files[:max]
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			logrus.WithError(err).WithField("filename", header.Filename).Warn("Failed to open upload")
			continue
		}
		result, err := h.storage.UploadImage(file, header, product.ID)
		file.Close()
		if err != nil {
			logrus.WithError(err).WithField("filename", header.Filename).Warn("Failed to store upload")
			continue
		}
		urls = append(urls, result.URL)
	}

	if err := h.catalog.AttachImages(product.ID, urls); err != nil {
		serviceError(c, err)
		return
	}

	redirect(c, "/admin")
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		serviceError(c, services.ErrProductNotFound)
		return
	}

	if err := h.catalog.DeleteProduct(uint(id)); err != nil {
		serviceError(c, err)
		return
	}

	redirect(c, "/admin")
}

// Orders lists every order for the seller, paginated and sortable.
func (h *AdminHandler) Orders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orders.ListOrders(params)
	if err != nil {
		serviceError(c, err)
		return
	}

	render(c, http.StatusOK, "admin_orders.html", gin.H{
		"Orders":     orders,
		"Pagination": utils.CreatePaginationResult(orders, total, params),
	})
}

// MarkPaid confirms a cash transfer arrived: the order flips to paid and
// stock is decremented. Repeats are a no-op back to the list.
func (h *AdminHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		serviceError(c, services.ErrOrderNotFound)
		return
	}

	if _, err := h.orders.MarkPaid(uint(id)); err != nil {
		if err == services.ErrOrderAlreadyPaid {
			redirect(c, "/admin/orders")
			return
		}
		serviceError(c, err)
		return
	}

	redirect(c, "/admin/orders")
}

// formValue reads a multipart field accepting both the bare name and
// the bracketed array form some frontends submit.
func formValue(values map[string][]string, name string) string {
	if v := formValues(values, name); len(v) > 0 {
		return v[0]
	}
	return ""
}

func formValues(values map[string][]string, name string) []string {
	if v, ok := values[name+"[]"]; ok && len(v) > 0 {
		return v
	}
	return values[name]
}
