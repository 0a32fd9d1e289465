// Package server exposes the navigation engine over HTTP: volume lifecycle,
// static geometry, obstacle tracking, pathfinding, and debug payloads.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/o0olele/gridnav-go/config"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/scene"
	"github.com/o0olele/gridnav-go/volume"
)

// pathKey identifies a cached path query. Endpoints are keyed by cell, so
// any two positions resolving to the same cells share an entry.
type pathKey struct {
	start math32.Vector3i
	goal  math32.Vector3i
	probe volume.ProbeOptions
}

// Server owns the navigation volume and the obstacle world behind it. A
// single mutex serializes rebuilds against queries, matching the engine's
// rebuild-then-query contract.
type Server struct {
	cfg config.Config
	log *log.Logger

	mu     sync.Mutex
	world  *scene.World
	volume *volume.Volume
	cache  *math32.Cache[pathKey, []math32.Vector3]

	watchers *hub
}

// New wires a server from its configuration. The initial volume follows the
// configured layout but stays unbuilt until a build request arrives.
func New(cfg config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	world := scene.NewWorld(cfg.MaxObstacles)
	vol, err := volume.New(cfg.Volume, world)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      logger,
		world:    world,
		volume:   vol,
		watchers: newHub(),
	}
	if cfg.CacheSize > 0 {
		s.cache = math32.NewCache[pathKey, []math32.Vector3](cfg.CacheSize)
	}
	for _, warning := range vol.Warnings() {
		logger.Printf("volume config: %s", warning)
	}
	return s, nil
}

// Router builds the full HTTP handler, CORS included.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/volume", s.handleConfigureVolume).Methods("POST")
	api.HandleFunc("/teardown", s.handleTeardown).Methods("POST")
	api.HandleFunc("/geometry", s.handleAddGeometry).Methods("POST")
	api.HandleFunc("/geometry", s.handleClearGeometry).Methods("DELETE")
	api.HandleFunc("/mesh", s.handleAddMesh).Methods("POST")
	api.HandleFunc("/build", s.handleBuild).Methods("POST")
	api.HandleFunc("/path", s.handleFindPath).Methods("POST")
	api.HandleFunc("/occupied", s.handleOccupied).Methods("GET")
	api.HandleFunc("/nearest", s.handleNearestFree).Methods("GET")
	api.HandleFunc("/obstacle", s.handleAddObstacle).Methods("POST")
	api.HandleFunc("/obstacle/{id:[0-9]+}", s.handleMoveObstacle).Methods("PUT")
	api.HandleFunc("/obstacle/{id:[0-9]+}", s.handleRemoveObstacle).Methods("DELETE")
	api.HandleFunc("/obstacles", s.handleListObstacles).Methods("GET")
	api.HandleFunc("/debug/grid", s.handleDebugGrid).Methods("GET")
	api.HandleFunc("/debug/octree", s.handleDebugOctree).Methods("GET")
	api.HandleFunc("/save", s.handleSave).Methods("POST")
	api.HandleFunc("/load", s.handleLoad).Methods("POST")
	api.HandleFunc("/navigation/info", s.handleNavigationInfo).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/watch", s.handleWatch)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// Run serves the API until the listener fails. A pprof listener starts on
// the side when configured.
func (s *Server) Run() error {
	if s.cfg.PprofListen != "" {
		go func() {
			s.log.Println(http.ListenAndServe(s.cfg.PprofListen, nil))
		}()
	}

	s.log.Printf("gridnav service listening on %s", s.cfg.Listen)
	return http.ListenAndServe(s.cfg.Listen, s.Router())
}

// invalidate drops cached paths and tells watchers the navigation state
// changed. Callers hold s.mu.
func (s *Server) invalidate(eventType string, data interface{}) {
	if s.cache != nil {
		s.cache.Clear()
	}
	s.watchers.broadcast(event{Type: eventType, Data: data})
}

func (s *Server) cachedPath(key pathKey) ([]math32.Vector3, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Server) storePath(key pathKey, path []math32.Vector3) {
	if s.cache != nil {
		s.cache.Put(key, path)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
