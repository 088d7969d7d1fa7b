// Package web serves the frame inspector: the latest frame as json, text dump and glTF,
// and a websocket stream of frames.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/scene_demo/config"
)

type Server struct {
	hub *Hub
	cfg *config.Scene
}

func NewRouter(hub *Hub, cfg *config.Scene) *mux.Router {
	s := &Server{hub: hub, cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/json/frame", s.HandlerJsonFrame).Methods(http.MethodGet)
	r.HandleFunc("/json/frame/object/{name}", s.HandlerJsonObject).Methods(http.MethodGet)
	r.HandleFunc("/json/config", s.HandlerJsonConfig).Methods(http.MethodGet)
	r.HandleFunc("/dump/frame", s.HandlerDumpFrame).Methods(http.MethodGet)
	r.HandleFunc("/export/frame.glb", s.HandlerExportFrame).Methods(http.MethodGet)
	r.HandleFunc("/ws/frames", hub.ServeWs)
	return r
}

func StartServer(addr string, hub *Hub, cfg *config.Scene) error {
	r := NewRouter(hub, cfg)

	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
