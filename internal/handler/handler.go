// Package handler contains the HTTP surface: server-rendered menu and
// confirmation pages, the order form endpoint, and a JSON menu listing.
package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/menu"
	"github.com/xenking/pizza-orders/internal/domain/order"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the pizza ordering pages, delegating business logic to the
// order service and menu repository.
type Handler struct {
	items  menu.Repository
	orders *order.Service
	tmpl   *template.Template
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(items menu.Repository, orders *order.Service) *Handler {
	return &Handler{
		items:  items,
		orders: orders,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Register installs the handler's routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Menu)
	mux.HandleFunc("POST /order", h.CreateOrder)
	mux.HandleFunc("GET /confirmation/{order_id}", h.Confirmation)
	mux.HandleFunc("GET /api/menu", h.MenuJSON)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already sent; all that is left is to leave a trace.
		zctx.From(r.Context()).Error("Render template failed",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}
