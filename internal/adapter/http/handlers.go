package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/couchcryptid/impactviz-service/internal/adapter/neows"
	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const homeMessage = "ImpactViz Backend is running! Access /asteroids for data, POST to /simulate-impact."

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": homeMessage})
}

func (s *Server) handleAsteroids(c *gin.Context) {
	page := 0
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "'page' must be a non-negative integer."})
			return
		}
		page = n
	}

	body, err := s.deps.Catalog.Browse(c.Request.Context(), page)
	if err != nil {
		msg := err.Error()
		var ferr *neows.FetchError
		if errors.As(err, &ferr) {
			msg = ferr.Message
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msg})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req domain.ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("invalid simulation request", "error", err, "fields", failedFields(err))
		s.deps.Metrics.Simulations.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, errorResponse{Error: bindErrorMessage(err)})
		return
	}

	report, err := s.deps.Simulator.Simulate(req)
	if err != nil {
		s.deps.Metrics.Simulations.WithLabelValues("invalid").Inc()
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: inputErr.Message})
			return
		}
		s.logger.Error("simulation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "simulation failed"})
		return
	}

	s.deps.Metrics.Simulations.WithLabelValues("success").Inc()
	s.deps.Metrics.ImpactEnergyMt.Observe(report.KineticEnergy.MegatonsTNT)
	s.logger.Debug("simulation complete",
		"diameter_m", report.InputParams.DiameterM,
		"velocity_m_s", report.InputParams.VelocityMS,
		"megatons", report.KineticEnergy.MegatonsTNT,
	)

	s.publish(report)
	c.JSON(http.StatusOK, report)
}

// publish hands the report to the event queue. It never blocks the response.
func (s *Server) publish(report domain.ImpactReport) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(domain.NewSimulationEvent(report))
}

// bindErrorMessage maps a JSON binding failure onto a caller-facing message.
// Type errors on optional fields are reported by name; everything else is
// the missing-fields message.
func bindErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "density", "angle", "composition", "location", "location.lat", "location.lon":
			return "Invalid '" + typeErr.Field + "' value."
		}
	}
	return domain.MissingFieldsMessage
}

// failedFields lists the struct fields rejected by binding validation.
func failedFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
