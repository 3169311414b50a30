package server

import (
	"errors"
	"net/http"

	"github.com/matst80/slask-menu/pkg/common"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/facet"
	"github.com/matst80/slask-menu/pkg/presets"
	"github.com/matst80/slask-menu/pkg/sorting"
	"github.com/matst80/slask-menu/pkg/types"
)

var errPresetsDisabled = errors.New("presets are not enabled")

type CountResponse struct {
	Count         int `json:"count"`
	Total         int `json:"total"`
	ActiveFilters int `json:"activeFilters"`
}

func (ws *WebServer) Filter(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	request, err := types.FilterRequestFromHttp(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	res := ws.apply(request)
	if ws.Tracking != nil {
		go ws.Tracking.TrackFilter(sessionId, &res.Request, res.Count, r.Clone(r.Context()))
	}
	defaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

func (ws *WebServer) Count(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	request, err := types.FilterRequestFromHttp(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	defaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(CountResponse{
		Count:         ws.count(request),
		Total:         ws.Catalog.Len(),
		ActiveFilters: request.ActiveFilterCount(),
	})
}

func (ws *WebServer) writeJson(w http.ResponseWriter, r *http.Request, data any) {
	publicHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	if err := jsoncompat.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request) {
	ws.writeJson(w, r, ws.Engine.Metadata(ws.Catalog.Items()))
}

func (ws *WebServer) Categories(w http.ResponseWriter, r *http.Request) {
	ws.writeJson(w, r, facet.AvailableCategories(ws.Catalog.Items()))
}

func (ws *WebServer) PriceRange(w http.ResponseWriter, r *http.Request) {
	ws.writeJson(w, r, facet.PriceRangeOf(ws.Catalog.Items()))
}

func (ws *WebServer) Sorts(w http.ResponseWriter, r *http.Request) {
	publicHeaders(w, r, true, "3600")
	w.WriteHeader(http.StatusOK)
	if err := jsoncompat.NewEncoder(w).Encode(sorting.NewSorters()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := ws.Catalog.Get(r.PathValue("id"))
	if err != nil {
		_ = writeError(w, err)
		return
	}
	ws.writeJson(w, r, item)
}

func (ws *WebServer) ListPresets(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if ws.Presets == nil {
		http.Error(w, errPresetsDisabled.Error(), http.StatusNotImplemented)
		return nil
	}
	list, err := ws.Presets.List(r.Context())
	if err != nil {
		return writeError(w, err)
	}
	defaultHeaders(w, r, true, "10")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(list)
}

func (ws *WebServer) GetPreset(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if ws.Presets == nil {
		http.Error(w, errPresetsDisabled.Error(), http.StatusNotImplemented)
		return nil
	}
	preset, err := ws.Presets.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		return writeError(w, err)
	}
	defaultHeaders(w, r, true, "10")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(preset)
}

func (ws *WebServer) SavePreset(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if ws.Presets == nil {
		http.Error(w, errPresetsDisabled.Error(), http.StatusNotImplemented)
		return nil
	}
	request, err := types.FilterRequestFromHttp(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	preset, err := presets.NewPreset(r.PathValue("name"), request)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	if err = ws.Presets.Save(r.Context(), preset); err != nil {
		return writeError(w, err)
	}
	saved, err := ws.Presets.Get(r.Context(), preset.Name)
	if err != nil {
		return writeError(w, err)
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(saved)
}

func (ws *WebServer) DeletePreset(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if ws.Presets == nil {
		http.Error(w, errPresetsDisabled.Error(), http.StatusNotImplemented)
		return nil
	}
	if err := ws.Presets.Delete(r.Context(), r.PathValue("name")); err != nil {
		return writeError(w, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (ws *WebServer) ApplyPreset(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if ws.Presets == nil {
		http.Error(w, errPresetsDisabled.Error(), http.StatusNotImplemented)
		return nil
	}
	preset, err := ws.Presets.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		return writeError(w, err)
	}
	res := ws.apply(preset.Request)
	if ws.Tracking != nil {
		go ws.Tracking.TrackFilter(sessionId, &res.Request, res.Count, r.Clone(r.Context()))
	}
	defaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		defaultHeaders(w, r, false, "0")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv.HandleFunc("GET /filter", common.JsonHandler(ws.Tracking, ws.Filter))
	srv.HandleFunc("POST /filter", common.JsonHandler(ws.Tracking, ws.Filter))
	srv.HandleFunc("OPTIONS /filter", common.RespondToOptions)
	srv.HandleFunc("GET /count", common.JsonHandler(ws.Tracking, ws.Count))
	srv.HandleFunc("POST /count", common.JsonHandler(ws.Tracking, ws.Count))
	srv.HandleFunc("GET /facets", ws.Facets)
	srv.HandleFunc("GET /categories", ws.Categories)
	srv.HandleFunc("GET /price-range", ws.PriceRange)
	srv.HandleFunc("GET /sorts", ws.Sorts)
	srv.HandleFunc("GET /get/{id}", ws.GetItem)

	srv.HandleFunc("GET /presets", common.JsonHandler(ws.Tracking, ws.ListPresets))
	srv.HandleFunc("GET /presets/{name}", common.JsonHandler(ws.Tracking, ws.GetPreset))
	srv.HandleFunc("PUT /presets/{name}", common.JsonHandler(ws.Tracking, ws.SavePreset))
	srv.HandleFunc("DELETE /presets/{name}", common.JsonHandler(ws.Tracking, ws.DeletePreset))
	srv.HandleFunc("GET /presets/{name}/apply", common.JsonHandler(ws.Tracking, ws.ApplyPreset))
	srv.HandleFunc("OPTIONS /presets/{name}", common.RespondToOptions)

	return srv
}
