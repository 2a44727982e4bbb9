package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"apismith/internal/artifact"
	"apismith/internal/batch"
	"apismith/internal/safeio"
)

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Apps string `json:"apps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	apps := batch.ParseApps(in.Apps)
	if len(apps) == 0 {
		http.Error(w, "apps is required", http.StatusBadRequest)
		return
	}

	st := s.reg.create(s.newRunID(), apps)
	go s.execute(st)

	s.logger.Info("run started", zap.String("run_id", st.ID), zap.Strings("apps", apps))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"run_id": st.ID,
		"apps":   apps,
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := s.reg.get(strings.TrimSpace(r.PathValue("id")))
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st.snapshot())
}

func (s *Server) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	st, ok := s.reg.get(strings.TrimSpace(r.PathValue("id")))
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := st.subscribe()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-ch:
			if !open {
				fmt.Fprintf(w, "event: close\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			data, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Event, data)
			flusher.Flush()
			if evt.Event == eventRunDone {
				return
			}
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"uptime_s": int64(time.Since(s.started).Seconds()),
		"runs":     s.reg.count(),
	})
}

// handleArtifacts serves files previously written to the artifact
// directory. Directories come back as a JSON listing, files as raw
// bytes. All paths are resolved inside the artifact root.
func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if s.artifactDir == "" {
		http.Error(w, "artifact browsing not enabled", http.StatusNotFound)
		return
	}
	fsys, err := safeio.NewSafeFS(s.artifactDir)
	if err != nil {
		http.Error(w, "artifact root unavailable", http.StatusNotFound)
		return
	}

	rel := strings.Trim(r.PathValue("path"), "/")
	local := "."
	if rel != "" {
		local = filepath.FromSlash(rel)
	}

	info, err := fsys.SafeStat(local)
	if err != nil {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}

	if info.IsDir() {
		entries, err := fsys.SafeReadDir(local)
		if err != nil {
			http.Error(w, "artifact not found", http.StatusNotFound)
			return
		}
		type entry struct {
			Name string `json:"name"`
			Dir  bool   `json:"dir"`
		}
		out := struct {
			Path    string  `json:"path"`
			Entries []entry `json:"entries"`
		}{Path: rel, Entries: make([]entry, 0, len(entries))}
		for _, e := range entries {
			out.Entries = append(out.Entries, entry{Name: e.Name(), Dir: e.IsDir()})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
		return
	}

	data, err := fsys.SafeReadFile(local)
	if err != nil {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", artifact.ContentTypeFor(rel))
	_, _ = w.Write(data)
}

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type  string `json:"type"`
	RunID string `json:"run_id,omitempty"`
}

type wsOutbound struct {
	Type    string `json:"type"`
	RunID   string `json:"run_id,omitempty"`
	Event   *Event `json:"event,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleWS is the websocket progress feed. Clients send
// {"type":"subscribe","run_id":...} and receive event frames; a new
// subscribe replaces the previous one.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx := r.Context()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	var unsubscribe func()
	defer func() {
		if unsubscribe != nil {
			unsubscribe()
		}
	}()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushWS(writeCh, wsOutbound{Type: "pong"})
		case "subscribe":
			runID := strings.TrimSpace(in.RunID)
			st, ok := s.reg.get(runID)
			if !ok {
				pushWS(writeCh, wsOutbound{Type: "error", Message: "run not found: " + runID})
				continue
			}
			if unsubscribe != nil {
				unsubscribe()
			}
			ch, cancel := st.subscribe()
			unsubscribe = cancel
			pushWS(writeCh, wsOutbound{Type: "subscribed", RunID: runID})
			go func(runID string, ch chan Event) {
				for evt := range ch {
					frame := evt
					pushWS(writeCh, wsOutbound{Type: "event", RunID: runID, Event: &frame})
				}
			}(runID, ch)
		default:
			pushWS(writeCh, wsOutbound{Type: "error", Message: "unsupported type"})
		}
	}
}

// pushWS never blocks the caller; a slow socket loses its oldest frame.
func pushWS(writeCh chan wsOutbound, out wsOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
