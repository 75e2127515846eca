package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/schema"
	"github.com/goliatone/go-codejson/pkg/validation"
)

type componentsResponse struct {
	Page       string               `json:"page"`
	Heading    orchestrator.Heading `json:"heading"`
	Components []model.Component    `json:"components"`
}

type documentResponse struct {
	Document *document.Object  `json:"document"`
	Issues   []validation.Issue `json:"issues"`
}

func (s *Server) getHeading(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, orchestrator.PageHeading(page))
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	doc, err := s.pipeline.Document(r.Context(), page)
	if err != nil {
		s.fail(w, page, err)
		return
	}
	if doc.Format() == schema.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc.Raw()); err != nil {
			s.logger.Warn("write schema", zap.Error(err))
		}
		return
	}
	// YAML schemas are served as JSON.
	value, err := document.DecodeYAML(doc.Raw())
	if err != nil {
		s.fail(w, page, &schema.LoadError{Location: doc.Location(), Err: err})
		return
	}
	s.writeJSON(w, http.StatusOK, value)
}

func (s *Server) getComponents(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	components, err := s.pipeline.Compile(r.Context(), page)
	if err != nil {
		s.fail(w, page, err)
		return
	}
	s.writeJSON(w, http.StatusOK, componentsResponse{
		Page:       page,
		Heading:    orchestrator.PageHeading(page),
		Components: components,
	})
}

func (s *Server) postDocument(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	data, err := decodeSubmission(w, r, s.maxBodyBytes)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	result, err := s.pipeline.Reduce(r.Context(), page, data)
	if err != nil {
		s.fail(w, page, err)
		return
	}
	if result.Issues == nil {
		result.Issues = []validation.Issue{}
	}

	if isTruthy(r.URL.Query().Get("download")) {
		raw, err := document.EncodeIndent(result.Document)
		if err != nil {
			s.fail(w, page, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="code.json"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(raw); err != nil {
			s.logger.Warn("write download", zap.Error(err))
		}
		return
	}

	s.writeJSON(w, http.StatusOK, documentResponse{Document: result.Document, Issues: result.Issues})
}

// fail maps pipeline errors onto the JSON error envelope.
func (s *Server) fail(w http.ResponseWriter, page string, err error) {
	var unsupported *model.UnsupportedFieldTypeError
	switch {
	case errors.Is(err, schema.ErrInvalidPage):
		s.writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
	case errors.Is(err, schema.ErrSchemaLoad):
		s.logger.Warn("page not ready", zap.String("page", page), zap.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, "PAGE_NOT_READY", fmt.Sprintf("page %q is not available", page))
	case errors.As(err, &unsupported):
		s.writeError(w, http.StatusUnprocessableEntity, "UNSUPPORTED_FIELD_TYPE", err.Error())
	case errors.Is(err, model.ErrCyclicSchema):
		s.writeError(w, http.StatusUnprocessableEntity, "CYCLIC_SCHEMA", err.Error())
	case errors.Is(err, model.ErrKeyCollision):
		s.writeError(w, http.StatusUnprocessableEntity, "KEY_COLLISION", err.Error())
	default:
		s.logger.Error("request failed", zap.String("page", page), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func (s *Server) pageParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	page := strings.TrimSpace(chi.URLParam(r, "page"))
	if err := schema.ValidatePage(page); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return "", false
	}
	return page, true
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
