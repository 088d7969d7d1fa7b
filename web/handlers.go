package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/scene"
	"github.com/mogaika/scene_demo/utils"
	"github.com/mogaika/scene_demo/webutils"
)

var errNoFrame = errors.New("No frame rendered yet")

func (s *Server) lastFrame(w http.ResponseWriter) (scene.Snapshot, bool) {
	snap, ok := s.hub.Last()
	if !ok {
		webutils.WriteError(w, errNoFrame, http.StatusServiceUnavailable)
	}
	return snap, ok
}

func (s *Server) HandlerJsonFrame(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.lastFrame(w); ok {
		webutils.WriteJson(w, snap)
	}
}

func (s *Server) HandlerJsonObject(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	snap, ok := s.lastFrame(w)
	if !ok {
		return
	}
	if o, ok := snap.Object(name); ok {
		webutils.WriteJson(w, o)
	} else {
		webutils.WriteError(w, errors.Errorf("Object %q not found", name), http.StatusNotFound)
	}
}

func (s *Server) HandlerJsonConfig(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, s.cfg)
}

func (s *Server) HandlerDumpFrame(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.lastFrame(w); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		webutils.WriteResult(w, []byte(utils.SDump(snap)))
	}
}

func (s *Server) HandlerExportFrame(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lastFrame(w)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := ExportSnapshot(&buf, &snap); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to export frame %d", snap.Frame))
		return
	}
	webutils.WriteFile(w, &buf, fmt.Sprintf("frame%d.glb", snap.Frame))
}
