package httpserver

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vvalberg/ferrodex"
	"github.com/vvalberg/ferrodex/internal/queryprep"
)

var validate = validator.New()

// searchRequest is the validated shape of a /search request, read from its
// query-string parameters; a request body is not read.
type searchRequest struct {
	Query  string `validate:"required"`
	Format string
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, RequestID: requestIDFrom(r.Context())})
}

// handleSearch serves GET /search?q=<query>&format=json|html.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{
		Query:  r.URL.Query().Get("q"),
		Format: r.URL.Query().Get("format"),
	}
	if err := validate.Struct(&req); err != nil {
		s.log.Warn().Err(err).Msg("rejected search request")
		writeError(w, r, http.StatusBadRequest, "missing required query parameter \"q\"")
		return
	}

	tokens := queryprep.Tokens(req.Query)

	s.mu.RLock()
	results, err := s.idx.Query(tokens)
	s.mu.RUnlock()

	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}

	if req.Format == "html" {
		s.renderHTML(w, r, req.Query, results)
		return
	}
	s.renderJSON(w, results)
}

func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var synErr *ferrodex.SyntaxError
	switch {
	case errors.Is(err, ferrodex.ErrEmptyQuery):
		writeError(w, r, http.StatusBadRequest, "empty query")
	case errors.As(err, &synErr):
		writeError(w, r, http.StatusBadRequest, synErr.Error())
	default:
		s.log.Error().Err(err).Msg("query failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) renderJSON(w http.ResponseWriter, results []ferrodex.QueryResult) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Results []ferrodex.QueryResult `json:"results"`
	}{Results: results})
}

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html><head><title>ferrodex: {{.Query}}</title></head>
<body>
<h1>Results for "{{.Query}}"</h1>
<ol>
{{range .Results}}<li>{{.Path}} <small>({{printf "%.4f" .Score}})</small></li>
{{else}}<li>No matches.</li>
{{end}}
</ol>
</body></html>
`))

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, query string, results []ferrodex.QueryResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Query   string
		Results []ferrodex.QueryResult
	}{Query: query, Results: results}

	if err := resultsTemplate.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("rendering results template")
	}
}
