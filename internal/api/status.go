package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/samcharles93/ommbake/internal/logger"
	"github.com/samcharles93/ommbake/internal/ommerr"
)

// StatusResponse describes one decoded CUDA status.
type StatusResponse struct {
	Family  string `json:"family"`
	Code    int    `json:"code"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

type ErrorResponse struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
}

// Describe decodes st with rt. Failures are reported with the classification
// a Checker would attach.
func Describe(rt ommerr.Runtime, st ommerr.Status) StatusResponse {
	name, _ := ommerr.Name(st)
	result := ommerr.Success
	if !st.OK() {
		result = ommerr.ErrorCuda
	}
	return StatusResponse{
		Family:  st.Family.String(),
		Code:    st.Code,
		Name:    name,
		Message: ommerr.Decode(rt, st),
		Result:  result.String(),
	}
}

type Server struct {
	rt  ommerr.Runtime
	log logger.Logger
}

func NewServer(rt ommerr.Runtime, log logger.Logger) *Server {
	if rt == nil {
		rt = ommerr.StaticRuntime{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Server{rt: rt, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/status/:family/:code", s.handleStatus)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleStatus(c *echo.Context) error {
	family, err := ommerr.ParseFamily(c.Param("family"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
	}
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", "status code must be an integer")
	}
	resp := Describe(s.rt, ommerr.Status{Family: family, Code: code})
	s.log.Debug("decoded status", "family", resp.Family, "code", resp.Code, "message", resp.Message)
	return c.JSON(http.StatusOK, resp)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorResponse{
			Message:   msg,
			Type:      errType,
			RequestID: uuid.NewString(),
		},
	})
}
