// Package api serves the board over HTTP: read-only queries for tiles,
// groups, and scores, the packed snapshot for renderers, and a WebSocket
// stream pushing a fresh snapshot after every recompute.
// See design doc Section 8.4.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mfriedel/hexscope/internal/engine"
	"github.com/mfriedel/hexscope/internal/hexgrid"
	"github.com/mfriedel/hexscope/internal/persistence"
)

// Server exposes one engine. DB is optional; without it the sessions
// endpoint reports unavailable.
type Server struct {
	Eng  *engine.Engine
	DB   *persistence.DB
	Host string
	Port int

	// Active stream connection count (atomic).
	streamConns int32
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Placement ranking walks the frontier; keep it off the hot path.
	placementLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/tile", s.handleTile)
	mux.HandleFunc("/api/v1/group", s.handleGroup)
	mux.HandleFunc("/api/v1/score", s.handleScore)
	mux.HandleFunc("/api/v1/locate", s.handleLocate)
	mux.HandleFunc("/api/v1/placements", RateLimitMiddleware(placementLimiter, s.handlePlacements))
	mux.HandleFunc("/api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/v1/sessions", s.handleSessions)
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// coordParam parses the s and t query parameters.
func coordParam(r *http.Request) (hexgrid.GridCoord, error) {
	sv, err1 := strconv.Atoi(r.URL.Query().Get("s"))
	tv, err2 := strconv.Atoi(r.URL.Query().Get("t"))
	if err1 != nil || err2 != nil {
		return hexgrid.GridCoord{}, fmt.Errorf("s and t must be integers")
	}
	return hexgrid.GridCoord{S: sv, T: tv}, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Eng.Snapshot()
	writeJSON(w, map[string]any{
		"name":   "hexscope",
		"schema": snap.Schema,
		"seq":    snap.Seq,
		"offset": snap.Offset,
		"extent": snap.Extent,
		"stats":  snap.Stats,
	})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	c, err := coordParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tile, ok := s.Eng.TileAt(c)
	if !ok {
		http.Error(w, "no tile at coordinate", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"coord": c, "tile": tile})
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	c, err := coordParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	segment := 0
	if v := r.URL.Query().Get("segment"); v != "" {
		segment, err = strconv.Atoi(v)
		if err != nil || segment < 0 || segment > 5 {
			http.Error(w, "segment must be 0-5", http.StatusBadRequest)
			return
		}
	}
	group, ok := s.Eng.GroupAt(c, segment)
	if !ok {
		http.Error(w, "no group at segment", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"group":   group,
		"terrain": group.Terrain.String(),
		"closed":  group.Closed(),
		"size":    len(group.Segments),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	c, err := coordParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"coord": c, "score": s.Eng.ScoreAt(c)})
}

// handleLocate maps a world-space point to its cell.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	x, err1 := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, err2 := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"coord": s.Eng.Locate(x, y)})
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	next := s.Eng.NextTile()
	if next == nil {
		http.Error(w, "save has no pending tile", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"next":       next,
		"placements": s.Eng.Placements(),
	})
}

// handleSnapshot serves the packed cell buffer for renderers that poll
// instead of streaming.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.Eng.Snapshot()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Snapshot-Schema", strconv.FormatUint(uint64(snap.Schema), 10))
	w.Header().Set("X-Snapshot-Seq", strconv.FormatUint(snap.Seq, 10))
	w.Write(snap.Bytes())
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	sessions, err := s.DB.RecentSessions(limit)
	if err != nil {
		slog.Error("sessions query failed", "error", err)
		http.Error(w, "sessions query failed", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []persistence.Session{}
	}
	writeJSON(w, sessions)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}
