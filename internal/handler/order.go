package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/menu"
	"github.com/xenking/pizza-orders/internal/domain/order"
)

// CreateOrder processes the order form and redirects to the confirmation
// page. Missing or malformed fields are a 400; an unusable promo code is not
// an error and the order proceeds without a discount.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form data", http.StatusBadRequest)
		return
	}

	itemID, err := strconv.ParseInt(r.PostFormValue("pizza_id"), 10, 64)
	if err != nil {
		http.Error(w, "missing or invalid pizza_id", http.StatusBadRequest)
		return
	}

	quantity, err := strconv.ParseInt(r.PostFormValue("quantity"), 10, 32)
	if err != nil || quantity <= 0 {
		http.Error(w, "quantity must be a positive integer", http.StatusBadRequest)
		return
	}

	customerName := strings.TrimSpace(r.PostFormValue("customer_name"))
	if customerName == "" {
		http.Error(w, "customer_name required", http.StatusBadRequest)
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		ItemID:       itemID,
		Quantity:     int32(quantity),
		CustomerName: customerName,
		PromoCode:    r.PostFormValue("promo_code"),
	})
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			http.Error(w, "unknown pizza_id", http.StatusBadRequest)
		case errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrEmptyCustomerName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			zctx.From(r.Context()).Error("Place order failed", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/confirmation/%d", o.ID), http.StatusSeeOther)
}
