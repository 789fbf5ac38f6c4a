package api

import (
	"net/http"
	"strconv"

	"numkit/domain/arithmetic"
	"numkit/domain/complexnum"
	"numkit/domain/core"
	"numkit/domain/geometry"
	"numkit/domain/stats"
	apperrors "numkit/internal/errors"

	"github.com/gin-gonic/gin"
)

type sampleRequest struct {
	Values stats.Sample `json:"values"`
	Label  string       `json:"label"`
}

type columnsRequest struct {
	Columns []stats.Column `json:"columns"`
}

type arithmeticRequest struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

type geometryRequest struct {
	Args []float64 `json:"args"`
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(code string) int {
	switch code {
	case apperrors.CodeInvalidArgument, apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeDivisionByZero:
		return http.StatusUnprocessableEntity
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) respondError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	status := statusFor(appErr.Code)
	if status == http.StatusInternalServerError {
		s.logger.Error("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, errorResponse{Error: appErr.Message, Code: appErr.Code})
}

// bindJSON decodes the body, answering 400 INVALID_INPUT on malformed JSON
func (s *Server) bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  apperrors.CodeInvalidInput,
		})
		return false
	}
	return true
}

func (s *Server) handleSummary(c *gin.Context) {
	var req sampleRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, err := s.calculator.Summarize(c.Request.Context(), req.Label, req.Values)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleColumns(c *gin.Context) {
	var req columnsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	summaries, err := s.calculator.SummarizeColumns(c.Request.Context(), req.Columns)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": summaries})
}

func (s *Server) handleStatistic(c *gin.Context) {
	op, err := stats.ParseOperation(c.Param("operation"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req sampleRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, err := s.calculator.Statistic(c.Request.Context(), op, req.Values)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleArithmetic(c *gin.Context) {
	op, err := arithmetic.ParseOperation(c.Param("operation"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req arithmeticRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, err := s.calculator.Arithmetic(c.Request.Context(), op, req.A, req.B)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGeometry(c *gin.Context) {
	m, err := geometry.ParseMeasure(c.Param("measure"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req geometryRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, err := s.calculator.Geometry(c.Request.Context(), m, req.Args)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"computation_id": result.ComputationID,
		"measure":        result.Operation,
		"value":          result.Value,
	})
}

// handleComplex reuses geometryRequest: args are real and imaginary parts
func (s *Server) handleComplex(c *gin.Context) {
	op, err := complexnum.ParseOperation(c.Param("operation"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req geometryRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, err := s.calculator.Complex(c.Request.Context(), op, req.Args)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(c, core.NewInvalidArgumentError("limit must be an integer, got %q", raw))
			return
		}
		limit = n
	}
	computations, err := s.calculator.History(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"computations": computations, "count": len(computations)})
}

func (s *Server) handleComputation(c *gin.Context) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	computation, err := s.calculator.Computation(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, computation)
}
