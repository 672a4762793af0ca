package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
)

// StreamInterval caps the preview at about 15 frames per second.
const StreamInterval = 66 * time.Millisecond

// Stream is a display.Display that serves the annotated preview as MJPEG.
// Runs without a window (--headless, --tray) use it to keep the landmark
// overlay visible in a browser.
type Stream struct {
	interval time.Duration
	clients  atomic.Int32

	mu      sync.Mutex
	frame   []byte
	seq     uint64
	updated chan struct{}
	closed  bool
	last    time.Time
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{
		interval: StreamInterval,
		updated:  make(chan struct{}),
	}
}

var _ display.Display = (*Stream)(nil)

// Show annotates frame and publishes it as JPEG when a client is watching.
// It never asks the loop to quit.
func (s *Stream) Show(frame *gocv.Mat, hands []detector.HandLandmarks, caption string) bool {
	if s.clients.Load() == 0 || !s.due(time.Now()) {
		return false
	}

	display.Annotate(frame, hands, caption)
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return false
	}
	defer buf.Close()

	s.publish(buf.GetBytes())
	return false
}

// Close ends every open stream response.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.updated)
	}
	return nil
}

// Clients returns the number of connected viewers.
func (s *Stream) Clients() int {
	return int(s.clients.Load())
}

func (s *Stream) due(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.last) < s.interval {
		return false
	}
	s.last = now
	return true
}

// publish stores a copy of jpeg as the latest frame and wakes the viewers.
func (s *Stream) publish(jpeg []byte) {
	data := append([]byte(nil), jpeg...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.frame = data
	s.seq++
	close(s.updated)
	s.updated = make(chan struct{})
}

// next returns the newest frame after seq, or the channel to wait on when
// there is none yet.
func (s *Stream) next(seq uint64) ([]byte, uint64, <-chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, seq, nil, false
	}
	if s.frame != nil && s.seq != seq {
		return s.frame, s.seq, nil, true
	}
	return nil, seq, s.updated, true
}

// ServeHTTP streams MJPEG frames to connected clients.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.clients.Add(1)
	defer s.clients.Add(-1)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	var seq uint64
	for {
		data, n, wait, open := s.next(seq)
		if !open {
			return
		}
		if wait != nil {
			select {
			case <-r.Context().Done():
				return
			case <-wait:
			}
			continue
		}
		seq = n

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
		if _, err := w.Write(data); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
