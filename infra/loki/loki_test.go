package loki

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type pushRecorder struct {
	mu       sync.Mutex
	paths    []string
	requests []pushRequest
}

func (p *pushRecorder) handler(w http.ResponseWriter, r *http.Request) {
	var body pushRequest
	_ = json.NewDecoder(r.Body).Decode(&body)
	p.mu.Lock()
	p.paths = append(p.paths, r.URL.Path)
	p.requests = append(p.requests, body)
	p.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func TestNewHookDisabled(t *testing.T) {
	if NewHook("", "bucket-list") != nil {
		t.Fatalf("expected nil hook without url")
	}
	if NewHook("http://loki:3100", "") != nil {
		t.Fatalf("expected nil hook without job")
	}
}

func TestHookPushesOnClose(t *testing.T) {
	recorder := &pushRecorder{}
	server := httptest.NewServer(http.HandlerFunc(recorder.handler))
	defer server.Close()

	hook := newHook(server.URL+"/", "bucket-list", time.Hour)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)

	logger.Info("item created")
	logger.Warn("publish failed")
	logger.Info("consumer created")
	_ = hook.Close()
	_ = hook.Close()

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.requests) != 1 {
		t.Fatalf("expected a single push, got %d", len(recorder.requests))
	}
	if recorder.paths[0] != "/loki/api/v1/push" {
		t.Fatalf("unexpected push path %s", recorder.paths[0])
	}
	streams := recorder.requests[0].Streams
	if len(streams) != 2 {
		t.Fatalf("expected one stream per level, got %+v", streams)
	}
	if streams[0].Stream["job"] != "bucket-list" || streams[0].Stream["level"] != "info" || len(streams[0].Values) != 2 {
		t.Fatalf("unexpected info stream %+v", streams[0])
	}
	if streams[1].Stream["level"] != "warning" || len(streams[1].Values) != 1 {
		t.Fatalf("unexpected warning stream %+v", streams[1])
	}
}

func TestHookFlushesAtThreshold(t *testing.T) {
	recorder := &pushRecorder{}
	server := httptest.NewServer(http.HandlerFunc(recorder.handler))
	defer server.Close()

	hook := newHook(server.URL, "bucket-list", time.Hour)
	defer hook.Close()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)

	for i := 0; i < flushThreshold; i++ {
		logger.Info("line")
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.requests) != 1 || len(recorder.requests[0].Streams[0].Values) != flushThreshold {
		t.Fatalf("expected one push of %d lines, got %+v", flushThreshold, recorder.requests)
	}
}
