package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/scene_demo/config"
	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/input"
	"github.com/mogaika/scene_demo/scene"
)

func renderedFrame(t *testing.T) scene.Snapshot {
	cfg := config.Default()
	cfg.FpsLogInterval = 0
	s := scene.NewOrbitScene(cfg, gfx.NewRecorder(), 640, 480)
	require.NoError(t, s.Init())
	s.Update(0.5, &input.State{})
	return s.Snapshot()
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNoFrameYet(t *testing.T) {
	r := NewRouter(NewHub(), config.Default())

	for _, url := range []string{"/json/frame", "/dump/frame", "/export/frame.glb", "/json/frame/object/sun"} {
		rr := get(t, r, url)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, url)
		assert.Contains(t, rr.Body.String(), `"error"`, url)
	}
}

func TestJsonFrame(t *testing.T) {
	hub := NewHub()
	snap := renderedFrame(t)
	hub.Publish(snap)
	r := NewRouter(hub, config.Default())

	rr := get(t, r, "/json/frame")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var decoded scene.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	assert.Equal(t, snap.Frame, decoded.Frame)
	require.Len(t, decoded.Objects, len(snap.Objects))
	moon, ok := decoded.Object("moon")
	require.True(t, ok)
	assert.Equal(t, "earth", moon.Parent)
	want, _ := snap.Object("moon")
	assert.Equal(t, want.World, moon.World)
}

func TestJsonObject(t *testing.T) {
	hub := NewHub()
	hub.Publish(renderedFrame(t))
	r := NewRouter(hub, config.Default())

	rr := get(t, r, "/json/frame/object/earth")
	require.Equal(t, http.StatusOK, rr.Code)
	var o scene.ObjectState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &o))
	assert.Equal(t, "earth", o.Name)
	assert.Equal(t, "sun", o.Parent)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/json/frame/object/pluto").Code)
}

func TestJsonConfig(t *testing.T) {
	cfg := config.Default()
	r := NewRouter(NewHub(), cfg)

	rr := get(t, r, "/json/config")
	require.Equal(t, http.StatusOK, rr.Code)
	var decoded config.Scene
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	assert.Equal(t, len(cfg.Bodies), len(decoded.Bodies))
}

func TestDumpFrame(t *testing.T) {
	hub := NewHub()
	hub.Publish(renderedFrame(t))
	r := NewRouter(hub, config.Default())

	rr := get(t, r, "/dump/frame")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rr.Body.String(), "scene.Snapshot")
	assert.Contains(t, rr.Body.String(), `"moon"`)
}

func TestExportFrame(t *testing.T) {
	hub := NewHub()
	snap := renderedFrame(t)
	hub.Publish(snap)
	r := NewRouter(hub, config.Default())

	rr := get(t, r, "/export/frame.glb")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".glb")

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&doc))

	nodes := make(map[string]*gltf.Node)
	for _, n := range doc.Nodes {
		nodes[n.Name] = n
	}
	assert.NotContains(t, nodes, scene.EnvironmentName)
	require.Contains(t, nodes, "sun")
	require.Contains(t, nodes, "earth")
	require.Contains(t, nodes, "moon")
	require.Contains(t, nodes, scene.QuadName)

	earth, _ := snap.Object("earth")
	assert.Equal(t, [16]float32(earth.Local), nodes["earth"].Matrix)
	assert.Len(t, nodes["sun"].Children, 1)
	assert.Len(t, nodes["earth"].Children, 1)
	assert.NotEqual(t, *nodes["sun"].Mesh, *nodes[scene.QuadName].Mesh)
}

func TestExportRejectsOrphans(t *testing.T) {
	snap := scene.Snapshot{Objects: []scene.ObjectState{
		{Name: "moon", Parent: "earth", Local: mgl32.Ident4()},
	}}
	var buf bytes.Buffer
	assert.Error(t, ExportSnapshot(&buf, &snap))
}

func TestHubStream(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(NewRouter(hub, config.Default()))
	defer srv.Close()

	hub.Publish(scene.Snapshot{Frame: 1})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/frames"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() scene.Snapshot {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var snap scene.Snapshot
		require.NoError(t, conn.ReadJSON(&snap))
		return snap
	}

	// last frame is replayed on connect
	assert.Equal(t, uint64(1), read().Frame)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(scene.Snapshot{Frame: 2})
	assert.Equal(t, uint64(2), read().Frame)
}

func TestHubDropsForSlowClients(t *testing.T) {
	hub := NewHub()
	c := &client{hub: hub, send: make(chan []byte, 1)}
	hub.register(c)

	hub.Publish(scene.Snapshot{Frame: 1})
	hub.Publish(scene.Snapshot{Frame: 2})
	hub.Publish(scene.Snapshot{Frame: 3})

	assert.Equal(t, uint64(2), hub.Dropped())
	last, ok := hub.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(3), last.Frame)
	assert.Len(t, c.send, 1)
}
