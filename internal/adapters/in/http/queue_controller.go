package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
	"github.com/devtec-sai/queue-coordinator/internal/core/json_types"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/in"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

// QueueController exposes the coordinator to the dashboard UI. Route names
// and error envelope follow the registry's own API so the front end talks
// one dialect.
type QueueController struct {
	useCase in.QueueCoordinatorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewQueueController(useCase in.QueueCoordinatorUseCase, cfg *config.Config, logger out.LoggerPort) *QueueController {
	return &QueueController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *QueueController) RegisterRoutes(router *gin.Engine) {
	router.Use(c.requestID())

	api := router.Group("/api/v1/agendamentos")
	api.Use(c.basicAuth())
	{
		api.POST("/agendar", c.schedule)
		api.GET("/consultar_agendamentos", c.listAppointments)
		api.GET("/fila", c.buckets)
		api.POST("/:id/status", c.updateStatus)
		api.POST("/atualizar", c.refresh)
	}
}

type ScheduleRequest struct {
	RequesterName    string `json:"nomeSolicitante" binding:"required"`
	NationalID       string `json:"cpf" binding:"required"`
	SecondaryID      string `json:"rg"`
	ServiceType      string `json:"tipoServico" binding:"required"`
	PriorityClass    string `json:"prioridade" binding:"required"`
	ScheduledArrival string `json:"dataHoraChegada" binding:"required"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	Confirmed bool   `json:"confirmed"`
}

type errorResponse struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *QueueController) schedule(ctx *gin.Context) {
	var req ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var arrival json_types.DateTime
	if err := arrival.UnmarshalJSON([]byte(`"` + req.ScheduledArrival + `"`)); err != nil {
		c.fail(ctx, http.StatusBadRequest, "invalid arrival date format")
		return
	}

	draft := domain.AppointmentDraft{
		RequesterName:    req.RequesterName,
		NationalID:       req.NationalID,
		SecondaryID:      req.SecondaryID,
		ServiceType:      domain.ServiceType(req.ServiceType),
		PriorityClass:    domain.PriorityClass(req.PriorityClass),
		ScheduledArrival: arrival,
	}

	appointment, err := c.useCase.Schedule(ctx.Request.Context(), draft)
	if err != nil && appointment == nil {
		c.failDomain(ctx, err)
		return
	}

	// A non-nil appointment with an error means the create committed but the
	// follow-up refresh failed; the record is still returned.
	ctx.JSON(http.StatusCreated, appointment)
}

func (c *QueueController) listAppointments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.useCase.Snapshot())
}

func (c *QueueController) buckets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.useCase.Buckets())
}

func (c *QueueController) updateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, http.StatusBadRequest, err.Error())
		return
	}

	confirm := func(context.Context, domain.Appointment) bool {
		return req.Confirmed
	}

	err := c.useCase.Transition(ctx.Request.Context(), id, domain.AppointmentStatus(req.Status), confirm)
	if err != nil {
		c.failDomain(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *QueueController) refresh(ctx *gin.Context) {
	if err := c.useCase.Refresh(ctx.Request.Context()); err != nil {
		c.failDomain(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *QueueController) fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, errorResponse{
		Message:   message,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// failDomain maps coordinator error kinds onto HTTP statuses for the UI.
func (c *QueueController) failDomain(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSchedulingConflict), errors.Is(err, domain.ErrOperationInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConfirmationDeclined):
		status = http.StatusPreconditionRequired
	case errors.Is(err, domain.ErrServiceUnavailable), errors.Is(err, domain.ErrRefreshFailed):
		status = http.StatusServiceUnavailable
	}

	c.fail(ctx, status, err.Error())
}

// requestID tags each request with a correlation id for the logs.
func (c *QueueController) requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := uuid.NewString()
		ctx.Header("X-Request-Id", id)

		c.logger.Debug("http.request", out.LogFields{
			"requestId": id,
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
		})

		ctx.Next()
	}
}

func (c *QueueController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
