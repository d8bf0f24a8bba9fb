package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/menu"
)

// menuPage is the template data for the menu listing.
type menuPage struct {
	Items []menuPageItem
}

type menuPageItem struct {
	ID    int64
	Name  string
	Price string
}

// Menu renders the pizza menu and order form.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("List menu failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := menuPage{Items: make([]menuPageItem, len(items))}
	for i, item := range items {
		page.Items[i] = toMenuPageItem(item)
	}

	h.render(w, r, "menu.html", page)
}

func toMenuPageItem(item menu.Item) menuPageItem {
	return menuPageItem{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price.StringFixed(2),
	}
}
