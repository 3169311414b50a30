package server

import (
	"net/http"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/types"
)

type UpsertResponse struct {
	Upserted int    `json:"upserted"`
	Version  uint64 `json:"version"`
}

func (ws *WebServer) UpsertItems(w http.ResponseWriter, r *http.Request) {
	items := make([]types.MenuItem, 0)
	if err := jsoncompat.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	valid := slices.DeleteFunc(items, func(item types.MenuItem) bool {
		return item.Id == ""
	})
	ws.Catalog.Upsert(valid...)
	itemChanges.WithLabelValues("upsert").Add(float64(len(valid)))
	log.Info("upserted menu items", "count", len(valid))

	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := jsoncompat.NewEncoder(w).Encode(UpsertResponse{Upserted: len(valid), Version: ws.Catalog.Version()}); err != nil {
		log.Error("failed to encode upsert response", "err", err)
	}
}

func (ws *WebServer) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := ws.Catalog.Delete(id); err != nil {
		_ = writeError(w, err)
		return
	}
	itemChanges.WithLabelValues("delete").Inc()
	log.Info("deleted menu item", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (ws *WebServer) ListItems(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := jsoncompat.NewEncoder(w).Encode(ws.Catalog.Items()); err != nil {
		log.Error("failed to encode items", "err", err)
	}
}

func (ws *WebServer) AdminHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("GET /items", ws.ListItems)
	srv.HandleFunc("POST /items", ws.UpsertItems)
	srv.HandleFunc("DELETE /items/{id}", ws.DeleteItem)
	return srv
}
