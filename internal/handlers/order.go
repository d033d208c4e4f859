// internal/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/littlethreads/storefront/internal/services"
	"github.com/littlethreads/storefront/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderService
}

type checkoutForm struct {
	ProductID    uint   `form:"product_id"`
	VariantID    uint   `form:"variant_id"`
	Quantity     int    `form:"quantity"`
	BuyerName    string `form:"buyer_name"`
	BuyerEmail   string `form:"buyer_email"`
	ShipName     string `form:"ship_name"`
	ShipPhone    string `form:"ship_phone"`
	ShipPostcode string `form:"ship_postcode"`
	ShipAddr1    string `form:"ship_addr1"`
	ShipAddr2    string `form:"ship_addr2"`
	ShipMemo     string `form:"ship_memo"`
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout records a pending order and renders the cash-transfer
// instructions page with the amount to send.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var form checkoutForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequestResponse(c, "invalid checkout form")
		return
	}
	if form.ProductID == 0 {
		if id, err := strconv.ParseUint(c.PostForm("product_id"), 10, 32); err == nil {
			form.ProductID = uint(id)
		}
	}

	order, err := h.orders.PlaceOrder(services.PlaceOrderInput{
		ProductID:    form.ProductID,
		Quantity:     form.Quantity,
		VariantID:    form.VariantID,
		BuyerName:    form.BuyerName,
		BuyerEmail:   form.BuyerEmail,
		ShipName:     form.ShipName,
		ShipPhone:    form.ShipPhone,
		ShipPostcode: form.ShipPostcode,
		ShipAddr1:    form.ShipAddr1,
		ShipAddr2:    form.ShipAddr2,
		ShipMemo:     form.ShipMemo,
	}, currentUser(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	option := order.OptionSize
	if order.OptionColor != "" {
		if option != "" {
			option += " / "
		}
		option += order.OptionColor
	}

	render(c, http.StatusOK, "checkout.html", gin.H{
		"Order":        order,
		"ProductTitle": order.Product.Title,
		"Option":       option,
	})
}

// Account shows the signed-in buyer's order history.
func (h *OrderHandler) Account(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		redirect(c, "/login")
		return
	}

	orders, err := h.orders.ListUserOrders(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	render(c, http.StatusOK, "account.html", gin.H{
		"Orders": orders,
	})
}
