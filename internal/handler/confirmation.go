package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/order"
)

// confirmationPage is the template data for the order summary.
type confirmationPage struct {
	OrderID      int64
	CustomerName string
	ItemName     string
	ItemPrice    string
	Quantity     int32
	OrderDate    string
	PromoCode    string
	Discount     string
	HasDiscount  bool
	Subtotal     string
	Total        string
}

// Confirmation renders the order summary with subtotal, discount, and total.
func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("order_id"), 10, 64)
	if err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	d, err := h.orders.GetDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		zctx.From(r.Context()).Error("Get order failed", zap.Error(err), zap.Int64("order_id", id))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "confirmation.html", confirmationPage{
		OrderID:      d.ID,
		CustomerName: d.CustomerName,
		ItemName:     d.ItemName,
		ItemPrice:    d.ItemPrice.StringFixed(2),
		Quantity:     d.Quantity,
		OrderDate:    d.CreatedAt.Format("2006-01-02 15:04:05"),
		PromoCode:    d.PromoCode,
		Discount:     d.DiscountAmount.String(),
		HasDiscount:  d.DiscountAmount.IsPositive(),
		Subtotal:     d.Subtotal().String(),
		Total:        d.Total().String(),
	})
}
