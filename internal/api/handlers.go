package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xdccfind/xdccfind/internal/finder"
)

// SearchRequest represents a search request.
type SearchRequest struct {
	Query      string `query:"query"`
	Resolution string `query:"resolution"`
	Episode    string `query:"episode"` // "latest", a number, or empty for all
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	API   string `json:"api,omitempty"`
}

// search handles GET /api/v1/search?query=...&resolution=...&episode=...
func (s *Server) search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters"})
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
	}

	var episode finder.EpisodeNumber
	if req.Episode != "" {
		parsed, err := finder.ParseEpisodeNumber(req.Episode)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		episode = parsed
	}

	resolution := req.Resolution
	if resolution == "" && s.cfg != nil {
		resolution = s.cfg.Search.Resolution
	}

	result, err := s.searcher.Search(c.Request().Context(), finder.NewQuery(req.Query, resolution, episode))
	if err != nil {
		return c.JSON(errorStatus(err), toErrorResponse(err))
	}

	return c.JSON(http.StatusOK, result)
}

// listFinders handles GET /api/v1/finders
func (s *Server) listFinders(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"finders": s.searcher.Finders()})
}

// finderStatus handles GET /api/v1/finders/status
func (s *Server) finderStatus(c echo.Context) error {
	statuses := s.searcher.Check(c.Request().Context())
	code := http.StatusOK
	for _, st := range statuses {
		if st.Checked && !st.Healthy {
			code = http.StatusServiceUnavailable
			break
		}
	}
	return c.JSON(code, map[string]any{"finders": statuses})
}

// errorStatus maps a search error to an HTTP status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case finder.IsAPIError(err), finder.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var finderErr *finder.Error
	if errors.As(err, &finderErr) {
		resp.API = finderErr.API
	}
	return resp
}
