package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/celeb-news/internal/pipeline"
	"github.com/jonathan/celeb-news/internal/types"
)

const (
	eventComplete = "complete"
	eventError    = "error"
)

// StreamFrame is the data of one progress event. Only the counters relevant to
// the step are set; full search results and article text stay server side.
type StreamFrame struct {
	RunID    string `json:"run_id,omitempty"`
	Message  string `json:"message"`
	Results  int    `json:"results,omitempty"`
	Included int    `json:"included,omitempty"`
	Branch   string `json:"branch,omitempty"`
}

// ProgressStream writes pipeline progress to a client as Server-Sent Events.
// Progress events are named after the pipeline step and carry increasing ids.
type ProgressStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// NewProgressStream prepares w for event streaming.
func NewProgressStream(w http.ResponseWriter) (*ProgressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &ProgressStream{w: w, flusher: flusher}, nil
}

// Progress sends one pipeline step.
func (s *ProgressStream) Progress(event pipeline.ProgressEvent) error {
	return s.send(event.Step, frameFor(event))
}

// Fail sends the run error with the status a plain request would have returned.
func (s *ProgressStream) Fail(err error) error {
	return s.send(eventError, map[string]any{
		"error":  err.Error(),
		"status": HTTPStatus(err),
	})
}

// Complete sends the final text of a run.
func (s *ProgressStream) Complete(resp SummarizeResponse) error {
	return s.send(eventComplete, resp)
}

func (s *ProgressStream) send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func frameFor(event pipeline.ProgressEvent) StreamFrame {
	frame := StreamFrame{RunID: event.RunID, Message: event.Message}
	switch content := event.Content.(type) {
	case []types.SearchResult:
		frame.Results = len(content)
	case types.AggregatedContext:
		frame.Included = content.Included
	case types.Summary:
		frame.Branch = string(content.Branch)
	}
	return frame
}
