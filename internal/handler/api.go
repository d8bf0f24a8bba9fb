package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// MenuJSON returns the menu as a JSON array for machine consumers.
func (h *Handler) MenuJSON(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("List menu failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, item := range items {
			e.Obj(func(e *jx.Encoder) {
				e.Field("id", func(e *jx.Encoder) { e.Int64(item.ID) })
				e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
				// Raw keeps the decimal's exact representation on the wire.
				e.Field("price", func(e *jx.Encoder) { e.Raw([]byte(item.Price.String())) })
			})
		}
	})

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(e.Bytes())
}
