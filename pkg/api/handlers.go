package api

import (
	"encoding/json"
	"math"
	"mime"
	"net/http"
	"sync"

	"oceanroute/pkg/query"
	"oceanroute/pkg/search"
)

// Handlers holds the HTTP handlers and their dependencies: the query
// façade external collaborators invoke, a pool of reusable
// search states (one borrowed exclusively per request), and
// the stats response served read-only.
type Handlers struct {
	facade *query.Facade
	stats  StatsResponse
	stPool sync.Pool
}

// NewHandlers creates handlers serving facade, pooling
// search.State values sized for facade's graph.
func NewHandlers(facade *query.Facade, stats StatsResponse) *Handlers {
	h := &Handlers{facade: facade, stats: stats}
	h.stPool.New = func() any {
		return search.NewState(int(facade.Graph.NumNodes))
	}
	return h
}

var variantByName = map[string]query.Variant{
	"":               query.Dijkstra,
	"dijkstra":       query.Dijkstra,
	"bidijkstra":     query.BiDijkstra,
	"astar":          query.AStar,
	"shortcut_astar": query.ShortcutAStar,
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	variant, ok := variantByName[req.Variant]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_variant", "variant")
		return
	}

	st := h.stPool.Get().(*search.State)
	defer h.stPool.Put(st)

	result, err := h.facade.FindPath(req.Start.Lng, req.Start.Lat, req.End.Lng, req.End.Lat, variant, st)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if !result.Found {
		writeError(w, http.StatusNotFound, "no_path_found", "")
		return
	}

	resp := RouteResponse{
		TotalDistanceMeters: result.Distance,
		HeapPops:            result.HeapPops,
		GeoJSON:             result.ToGeoJSON(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errCoord
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errCoord
	}
	return nil
}

var errCoord = &coordError{}

type coordError struct{}

func (*coordError) Error() string { return "coordinates out of range or non-finite" }

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
