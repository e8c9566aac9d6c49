package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"oceanroute/pkg/graph"
	"oceanroute/pkg/query"
	"oceanroute/pkg/raster"
)

func allWaterFacade(rows, cols int) *query.Facade {
	g := raster.New(rows, cols)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	return &query.Facade{Graph: graph.Build(g, water)}
}

func TestHandleRoute_Success(t *testing.T) {
	h := NewHandlers(allWaterFacade(10, 10), StatsResponse{NumNodes: 100})

	body := `{"start":{"lat":0.001,"lng":0.001},"end":{"lat":0.002,"lng":0.004}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.GeoJSON == nil {
		t.Error("expected a non-nil geojson field")
	}
}

func TestHandleRoute_InvalidJSON(t *testing.T) {
	h := NewHandlers(allWaterFacade(4, 4), StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_MissingContentType(t *testing.T) {
	h := NewHandlers(allWaterFacade(4, 4), StatsResponse{})

	body := `{"start":{"lat":1.3,"lng":103.8},"end":{"lat":1.35,"lng":103.85}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_OutOfBounds(t *testing.T) {
	h := NewHandlers(allWaterFacade(4, 4), StatsResponse{})

	// Latitude out of valid range (-90 to 90).
	body := `{"start":{"lat":91.0,"lng":103.8},"end":{"lat":1.35,"lng":103.85}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_InvalidVariant(t *testing.T) {
	h := NewHandlers(allWaterFacade(4, 4), StatsResponse{})

	body := `{"start":{"lat":0.001,"lng":0.001},"end":{"lat":0.002,"lng":0.002},"variant":"bogus"}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_NoPath(t *testing.T) {
	g := raster.New(6, 6)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	// Enclose the two water cells (3,3) and (4,3) with land: (3,3) keeps
	// an edge, so it snaps, but it cannot be reached from (0,0).
	for _, nb := range [][2]int{{2, 3}, {5, 3}, {3, 2}, {4, 2}, {3, 4}, {4, 4}} {
		water[g.Index(nb[0], nb[1])] = false
	}
	gr := graph.Build(g, water)
	h := NewHandlers(&query.Facade{Graph: gr}, StatsResponse{})

	target := g.Coordinate(3, 3)
	other := g.Coordinate(0, 0)
	body, _ := json.Marshal(map[string]any{
		"start": map[string]float64{"lat": other.LatDeg(), "lng": other.LonDeg()},
		"end":   map[string]float64{"lat": target.LatDeg(), "lng": target.LonDeg()},
	})
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404. body: %s", w.Code, w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(allWaterFacade(4, 4), StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	stats := StatsResponse{NumNodes: 500000, NumEdges: 1000000, HasOverlay: true}
	h := NewHandlers(allWaterFacade(4, 4), stats)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NumNodes != 500000 {
		t.Errorf("NumNodes = %d, want 500000", resp.NumNodes)
	}
	if !resp.HasOverlay {
		t.Error("expected HasOverlay true")
	}
}
