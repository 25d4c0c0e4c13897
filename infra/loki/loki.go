package loki

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const flushThreshold = 20

// Hook buffers logrus entries and ships them to Loki's push API, one stream
// per log level.
type Hook struct {
	url       string
	job       string
	client    *http.Client
	formatter logrus.Formatter
	mu        sync.Mutex
	buf       []lokiEntry
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

type lokiEntry struct {
	ts    string
	level string
	line  string
}

type pushRequest struct {
	Streams []pushStream `json:"streams"`
}

type pushStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewHook returns a Hook that pushes to the Loki base URL (e.g. http://loki:3100)
// under the given job label. It returns nil when url or job is empty.
func NewHook(url, job string) *Hook {
	return newHook(url, job, time.Second)
}

func newHook(url, job string, interval time.Duration) *Hook {
	if url == "" || job == "" {
		return nil
	}
	h := &Hook{
		url:       strings.TrimSuffix(url, "/") + "/loki/api/v1/push",
		job:       job,
		client:    &http.Client{Timeout: 5 * time.Second},
		formatter: &logrus.JSONFormatter{},
		buf:       make([]lokiEntry, 0, 64),
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.buf = append(h.buf, lokiEntry{
		ts:    strconv.FormatInt(entry.Time.UnixNano(), 10),
		level: entry.Level.String(),
		line:  string(bytes.TrimRight(line, "\n")),
	})
	needFlush := len(h.buf) >= flushThreshold
	h.mu.Unlock()
	if needFlush {
		h.flush()
	}
	return nil
}

func (h *Hook) flushLoop() {
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			h.flush()
		}
	}
}

func (h *Hook) flush() {
	h.mu.Lock()
	if len(h.buf) == 0 {
		h.mu.Unlock()
		return
	}
	entries := h.buf
	h.buf = make([]lokiEntry, 0, 64)
	h.mu.Unlock()

	byLevel := make(map[string][][]string)
	var levels []string
	for _, e := range entries {
		if _, ok := byLevel[e.level]; !ok {
			levels = append(levels, e.level)
		}
		byLevel[e.level] = append(byLevel[e.level], []string{e.ts, e.line})
	}
	body := pushRequest{}
	for _, level := range levels {
		body.Streams = append(body.Streams, pushStream{
			Stream: map[string]string{"job": h.job, "level": level},
			Values: byLevel[level],
		})
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, h.url, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close stops the background flusher and pushes whatever is still buffered.
func (h *Hook) Close() error {
	h.closeOnce.Do(func() {
		h.ticker.Stop()
		close(h.done)
		h.flush()
	})
	return nil
}
