package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/o0olele/gridnav-go/builder"
	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/pool"
	"github.com/o0olele/gridnav-go/scene"
	"github.com/o0olele/gridnav-go/volume"
)

// AddGeometryRequest carries one static collision shape.
type AddGeometryRequest struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Category string          `json:"category,omitempty"`
}

// PathfindRequest asks for a path between two world positions. The probe is
// optional, omitted fields fall back to the standard agent.
type PathfindRequest struct {
	Start math32.Vector3       `json:"start"`
	End   math32.Vector3       `json:"end"`
	Probe *volume.ProbeOptions `json:"probe,omitempty"`
}

// PathfindResponse mirrors the request with the waypoints found.
type PathfindResponse struct {
	Path   []math32.Vector3       `json:"path"`
	Found  bool                   `json:"found"`
	Length int                    `json:"length"`
	Debug  map[string]interface{} `json:"debug,omitempty"`
}

// ObstacleRequest registers or reconfigures a dynamic obstacle.
type ObstacleRequest struct {
	Kind       string         `json:"kind"`
	Category   string         `json:"category,omitempty"`
	Position   math32.Vector3 `json:"position"`
	Radius     float32        `json:"radius"`
	HalfHeight float32        `json:"half_height"`
}

// MoveObstacleRequest relocates an existing obstacle.
type MoveObstacleRequest struct {
	Position math32.Vector3 `json:"position"`
}

// FileRequest names a baked navigation file inside the data directory.
type FileRequest struct {
	Filename string `json:"filename"`
}

// StatsResponse summarizes the server state for dashboards.
type StatsResponse struct {
	Built       bool              `json:"built"`
	Stats       volume.BuildStats `json:"stats"`
	Obstacles   int               `json:"obstacles"`
	Capacity    int               `json:"obstacle_capacity"`
	Statics     int               `json:"statics"`
	CacheLen    int               `json:"cache_len"`
	CacheHits   int64             `json:"cache_hits"`
	CacheMisses int64             `json:"cache_misses"`
	Warnings    []string          `json:"warnings,omitempty"`
}

func (s *Server) handleConfigureVolume(w http.ResponseWriter, r *http.Request) {
	var cfg volume.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vol, err := volume.New(cfg, s.world)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.volume = vol
	s.invalidate("volume_configured", cfg)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "configured",
		"warnings": vol.Warnings(),
	})
}

func (s *Server) handleTeardown(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume.Teardown()
	s.invalidate("volume_teardown", nil)

	writeJSON(w, http.StatusOK, map[string]string{"status": "teardown"})
}

func (s *Server) handleAddGeometry(w http.ResponseWriter, r *http.Request) {
	var req AddGeometryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var geom geometry.Geometry
	switch req.Type {
	case "triangle":
		var triangle geometry.Triangle
		if err := json.Unmarshal(req.Data, &triangle); err != nil {
			http.Error(w, "Invalid triangle data", http.StatusBadRequest)
			return
		}
		geom = &triangle

	case "box":
		var box geometry.Box
		if err := json.Unmarshal(req.Data, &box); err != nil {
			http.Error(w, "Invalid box data", http.StatusBadRequest)
			return
		}
		geom = &box

	case "capsule":
		var capsule geometry.Capsule
		if err := json.Unmarshal(req.Data, &capsule); err != nil {
			http.Error(w, "Invalid capsule data", http.StatusBadRequest)
			return
		}
		geom = &capsule

	case "convex_mesh":
		var convexMesh geometry.ConvexMesh
		if err := json.Unmarshal(req.Data, &convexMesh); err != nil {
			http.Error(w, "Invalid convex mesh data", http.StatusBadRequest)
			return
		}
		geom = &convexMesh

	default:
		http.Error(w, "Unknown geometry type", http.StatusBadRequest)
		return
	}

	category := scene.WorldStatic
	if req.Category != "" {
		mask, err := scene.MaskFromNames([]string{req.Category})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		category = mask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.AddStatic(geom, category)
	s.invalidate("statics_changed", nil)

	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (s *Server) handleClearGeometry(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.ClearStatics()
	s.invalidate("statics_changed", nil)

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleAddMesh(w http.ResponseWriter, r *http.Request) {
	var triangles []geometry.Triangle
	if err := json.NewDecoder(r.Body).Decode(&triangles); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range triangles {
		s.world.AddStatic(&triangles[i], scene.WorldStatic)
	}
	s.invalidate("statics_changed", nil)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "added",
		"count":  len(triangles),
	})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.volume.Build()
	if err != nil {
		if errors.Is(err, volume.ErrAlreadyBuilt) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to build volume: %v", err), http.StatusInternalServerError)
		return
	}
	s.invalidate("volume_built", stats)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "built",
		"stats":  stats,
	})
}

func (s *Server) handleFindPath(w http.ResponseWriter, r *http.Request) {
	var req PathfindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opts := volume.DefaultProbeOptions()
	if req.Probe != nil {
		opts = *req.Probe
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.volume.Built() {
		http.Error(w, "Volume not built", http.StatusBadRequest)
		return
	}

	key := pathKey{
		start: s.volume.WorldToGrid(req.Start),
		goal:  s.volume.WorldToGrid(req.End),
		probe: opts,
	}

	cached := false
	path, ok := s.cachedPath(key)
	if ok {
		cached = true
	} else {
		var err error
		path, err = s.volume.FindPath(req.Start, req.End, opts)
		if err != nil {
			writeJSON(w, http.StatusOK, PathfindResponse{
				Found: false,
				Debug: map[string]interface{}{"reason": err.Error()},
			})
			return
		}
		s.storePath(key, path)
		s.watchers.broadcast(event{Type: "path_solved", Data: path})
	}

	writeJSON(w, http.StatusOK, PathfindResponse{
		Path:   path,
		Found:  true,
		Length: len(path),
		Debug: map[string]interface{}{
			"cached":     cached,
			"start_cell": key.start,
			"goal_cell":  key.goal,
		},
	})
}

func (s *Server) handleOccupied(w http.ResponseWriter, r *http.Request) {
	x, _ := strconv.ParseFloat(r.URL.Query().Get("x"), 32)
	y, _ := strconv.ParseFloat(r.URL.Query().Get("y"), 32)
	z, _ := strconv.ParseFloat(r.URL.Query().Get("z"), 32)
	point := math32.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}

	radius, _ := strconv.ParseFloat(r.URL.Query().Get("radius"), 32)
	halfHeight, _ := strconv.ParseFloat(r.URL.Query().Get("half_height"), 32)

	s.mu.Lock()
	defer s.mu.Unlock()

	occupied := s.volume.QueryPointBlocked(point)
	if !occupied && radius > 0 && halfHeight > 0 {
		occupied = s.world.DynamicOverlap(point, float32(radius), float32(halfHeight), 0, scene.MaskAll, "")
	}

	writeJSON(w, http.StatusOK, map[string]bool{"occupied": occupied})
}

func (s *Server) handleNearestFree(w http.ResponseWriter, r *http.Request) {
	x, _ := strconv.ParseFloat(r.URL.Query().Get("x"), 32)
	y, _ := strconv.ParseFloat(r.URL.Query().Get("y"), 32)
	z, _ := strconv.ParseFloat(r.URL.Query().Get("z"), 32)
	point := math32.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.volume.WorldToGrid(point)
	coord, err := s.volume.FindNearestFree(from, volume.DefaultProbeOptions())
	if err != nil {
		if errors.Is(err, volume.ErrNotBuilt) {
			http.Error(w, "Volume not built", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"coord":    coord,
		"position": s.volume.GridToWorld(coord),
	})
}

func (s *Server) handleAddObstacle(w http.ResponseWriter, r *http.Request) {
	var req ObstacleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	category := scene.WorldDynamic
	if req.Category != "" {
		mask, err := scene.MaskFromNames([]string{req.Category})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		category = mask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obstacle, err := s.world.AddObstacle(req.Kind, category, req.Position, req.Radius, req.HalfHeight)
	if err != nil {
		switch {
		case errors.Is(err, pool.ErrExhausted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, scene.ErrInvalidObstacle):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	s.invalidate("obstacle_added", obstacle)

	writeJSON(w, http.StatusOK, obstacle)
}

func obstacleID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleMoveObstacle(w http.ResponseWriter, r *http.Request) {
	id, err := obstacleID(r)
	if err != nil {
		http.Error(w, "Invalid obstacle id", http.StatusBadRequest)
		return
	}

	var req MoveObstacleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.world.MoveObstacle(id, req.Position); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	obstacle, _ := s.world.Obstacle(id)
	s.invalidate("obstacle_moved", obstacle)

	writeJSON(w, http.StatusOK, obstacle)
}

func (s *Server) handleRemoveObstacle(w http.ResponseWriter, r *http.Request) {
	id, err := obstacleID(r)
	if err != nil {
		http.Error(w, "Invalid obstacle id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.world.RemoveObstacle(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.invalidate("obstacle_removed", map[string]uint64{"id": id})

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleListObstacles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.world.Obstacles())
}

func (s *Server) handleDebugGrid(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.volume.GridLines())
}

func (s *Server) handleDebugOctree(w http.ResponseWriter, r *http.Request) {
	onlyBlocked := r.URL.Query().Get("blocked") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.volume.LeafBoxes(onlyBlocked))
}

// dataPath confines user-supplied filenames to the data directory.
func (s *Server) dataPath(filename string) string {
	return filepath.Join(s.cfg.DataDir, filepath.Base(filename))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		http.Error(w, "Missing filename", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cfg.DataDir, 0755); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create data dir: %v", err), http.StatusInternalServerError)
		return
	}
	if err := builder.BakeAndSave(s.volume, s.world, s.dataPath(req.Filename)); err != nil {
		if errors.Is(err, volume.ErrNotBuilt) {
			http.Error(w, "Volume not built", http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to save navigation data: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		http.Error(w, "Missing filename", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vol, err := builder.LoadVolume(s.dataPath(req.Filename), s.world)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load navigation data: %v", err), http.StatusInternalServerError)
		return
	}
	s.volume = vol
	s.invalidate("volume_loaded", vol.Stats())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "loaded",
		"stats":  vol.Stats(),
	})
}

func (s *Server) handleNavigationInfo(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		http.Error(w, "Missing filename parameter", http.StatusBadRequest)
		return
	}

	info, err := builder.Stat(s.dataPath(filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get file info: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatsResponse{
		Built:     s.volume.Built(),
		Stats:     s.volume.Stats(),
		Obstacles: s.world.ObstacleCount(),
		Capacity:  s.world.ObstacleCapacity(),
		Statics:   len(s.world.Statics()),
		Warnings:  s.volume.Warnings(),
	}
	if s.cache != nil {
		resp.CacheLen = s.cache.Len()
		resp.CacheHits = s.cache.Hits()
		resp.CacheMisses = s.cache.Misses()
	}

	writeJSON(w, http.StatusOK, resp)
}
