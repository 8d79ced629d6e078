package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/tidwall/gjson"

	"github.com/abhisek/erdgrade/internal/detect"
	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/feedback"
	"github.com/abhisek/erdgrade/internal/grading"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/metrics"
	"github.com/abhisek/erdgrade/internal/rubric"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:    "ok",
		Service:   "erdgrade",
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	})
}

type detectERDRequest struct {
	Image    string `json:"image"`
	MIMEType string `json:"mimeType"`
}

type detectERDResponse struct {
	Elements []erd.Element `json:"elements"`
}

func (s *Server) handleDetectERD(w http.ResponseWriter, r *http.Request) {
	var req detectERDRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		bodyError(w, r, err)
		return
	}

	img, err := llm.ParseDataURL(req.Image, req.MIMEType)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, KindMissingData, "image is required", err)
		return
	}
	if s.detector == nil {
		writeError(w, r, http.StatusServiceUnavailable, KindUnavailable, "no model provider configured", nil)
		return
	}

	els, err := s.detector.DetectERD(r.Context(), img)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "erd detection failed", "run_id", llm.RunIDFrom(r.Context()), "error", err)
		writeError(w, r, upstreamStatus(err), KindUpstreamFailure, "diagram detection failed", err)
		return
	}
	render.JSON(w, r, detectERDResponse{Elements: els})
}

type detectRubricRequest struct {
	Image    string `json:"image"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

func (s *Server) handleDetectRubric(w http.ResponseWriter, r *http.Request) {
	var req detectRubricRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		bodyError(w, r, err)
		return
	}

	in := detect.RubricInput{Text: req.Text}
	if req.Image != "" {
		img, err := llm.ParseDataURL(req.Image, req.MIMEType)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, KindMissingData, "invalid rubric image", err)
			return
		}
		in.Image = &img
	}
	if in.Image == nil && in.Text == "" {
		writeError(w, r, http.StatusBadRequest, KindMissingData, "rubric image or text is required", nil)
		return
	}
	if s.detector == nil {
		writeError(w, r, http.StatusServiceUnavailable, KindUnavailable, "no model provider configured", nil)
		return
	}

	rb, err := s.detector.DetectRubric(r.Context(), in)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "rubric detection failed", "run_id", llm.RunIDFrom(r.Context()), "error", err)
		writeError(w, r, upstreamStatus(err), KindUpstreamFailure, "rubric detection failed", err)
		return
	}
	render.JSON(w, r, rb)
}

// gradeRequest is the decoded body of POST /autograde-erd.
type gradeRequest struct {
	Student []erd.Element
	Correct []erd.Element
	Rubric  *rubric.Rubric
}

var errMissing = errors.New("missing required field")

// decodeGradeRequest reads the body loosely: element fields and rubric
// points may arrive with inconsistent types from upstream detectors.
func decodeGradeRequest(body []byte) (*gradeRequest, error) {
	root := gjson.ParseBytes(body)

	student := root.Get("studentElements")
	if !student.IsArray() {
		return nil, fmt.Errorf("%w: studentElements", errMissing)
	}
	correct := root.Get("correctAnswer.elements")
	if !correct.IsArray() {
		return nil, fmt.Errorf("%w: correctAnswer.elements", errMissing)
	}

	req := &gradeRequest{
		Student: erd.DecodeElementList(student),
		Correct: erd.DecodeElementList(correct),
	}
	if rs := root.Get("rubricStructured"); rs.Exists() && rs.Type != gjson.Null {
		rb, err := rubric.DecodeRubricResult(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: rubricStructured.criteria", errMissing)
		}
		req.Rubric = rb
	}
	return req, nil
}

func (s *Server) handleAutograde(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		bodyError(w, r, err)
		return
	}
	if !gjson.ValidBytes(body) {
		bodyError(w, r, errors.New("body is not valid JSON"))
		return
	}

	req, err := decodeGradeRequest(body)
	if err != nil {
		s.metrics.GradingRuns.WithLabelValues(metrics.OutcomeMissingData).Inc()
		writeError(w, r, http.StatusBadRequest, KindMissingData, "missing required grading data", err)
		return
	}

	res, err := s.grader.Grade(req.Correct, req.Student, req.Rubric)
	if err != nil {
		s.metrics.GradingRuns.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.logger.ErrorContext(ctx, "grading failed", "run_id", llm.RunIDFrom(ctx), "error", err)
		writeError(w, r, http.StatusInternalServerError, KindGradingFailed, "grading failed", err)
		return
	}
	s.metrics.ObserveScore(res.TotalScore, res.MaxScore)

	fb, usedFallback := s.feedbackFor(r, res)
	if usedFallback {
		s.metrics.FeedbackFallbacks.Inc()
	}

	out := feedback.Compose(res, fb)
	if s.cfg.Debug {
		out.WithDebug(res)
	}

	s.logger.InfoContext(ctx, "graded submission",
		"run_id", llm.RunIDFrom(ctx),
		"total", res.TotalScore,
		"max", res.MaxScore,
		"fallback_feedback", usedFallback,
	)
	render.JSON(w, r, out)
}

func (s *Server) feedbackFor(r *http.Request, res *grading.Result) (*feedback.Feedback, bool) {
	if s.renderer == nil {
		return feedback.Fallback(res), true
	}
	return s.renderer.RenderOrFallback(r.Context(), res)
}
