package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/celeb-news/internal/pipeline"
	"github.com/jonathan/celeb-news/internal/search"
)

// SummarizeRequest is the form a front-end submits.
// The recency filter is optional; supplying only half of it is an error.
type SummarizeRequest struct {
	Name      string  `json:"name"`
	DateValue *int    `json:"date_value,omitempty"`
	DateUnit  *string `json:"date_unit,omitempty"`
	Count     int     `json:"count,omitempty"`
}

// SummarizeResponse carries the text to display.
type SummarizeResponse struct {
	RunID    string `json:"run_id,omitempty"`
	Text     string `json:"text"`
	Branch   string `json:"branch,omitempty"`
	Included int    `json:"included"`
}

// decodeRequest parses and validates the form into a pipeline request.
// Validation messages are the same ones the CLI prints.
func (s *Server) decodeRequest(r *http.Request) (pipeline.Request, error) {
	var body SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return pipeline.Request{}, &search.InputError{Field: "body", Message: "Invalid request body: " + err.Error()}
	}

	filter, err := search.NewRecencyFilter(body.DateValue, body.DateUnit)
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{Name: body.Name, Filter: filter, Count: body.Count}
	if req.Count <= 0 {
		req.Count = s.count
	}
	if err := search.ValidateQuery(search.Query{Name: req.Name, Filter: req.Filter, Count: req.Count}); err != nil {
		return pipeline.Request{}, err
	}
	return req, nil
}

// handleSummarize runs the full pipeline and returns the summary text
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	res, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		s.log.Warn().Err(err).Str("name", req.Name).Msg("Pipeline run failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, toResponse(res))
}

// handleSummarizeStream runs the pipeline and streams progress via SSE
func (s *Server) handleSummarizeStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := NewProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	req.OnProgress = func(event pipeline.ProgressEvent) {
		if err := stream.Progress(event); err != nil {
			s.log.Warn().Err(err).Str("step", event.Step).Msg("Error writing progress event")
		}
	}

	res, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		s.log.Warn().Err(err).Str("name", req.Name).Msg("Streaming pipeline run failed")
		if err := stream.Fail(err); err != nil {
			s.log.Warn().Err(err).Msg("Error writing error event")
		}
		return
	}

	if err := stream.Complete(toResponse(res)); err != nil {
		s.log.Warn().Err(err).Msg("Error writing complete event")
	}
}

// handleDigest returns the headline digest without crawling
func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text, err := s.runner.Digest(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SummarizeResponse{Text: text})
}

func toResponse(res *pipeline.Result) SummarizeResponse {
	return SummarizeResponse{
		RunID:    res.RunID.String(),
		Text:     res.Text,
		Branch:   string(res.Summary.Branch),
		Included: res.Context.Included,
	}
}
