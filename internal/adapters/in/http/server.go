package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on.
type (
	CreateRequestHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRequestCommand) error
	}

	CreateDonationHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDonationCommand) error
	}

	TransitionHandler interface {
		Handle(ctx context.Context, cmd commands.ProposeTransitionCommand) (commands.TransitionResult, error)
	}

	FindVolunteersHandler interface {
		Handle(ctx context.Context, query queries.FindVolunteersQuery) ([]queries.FindVolunteersQueryResponse, error)
	}

	VolunteerAssignmentsHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetVolunteerAssignmentsQuery,
		) ([]queries.GetVolunteerAssignmentsQueryResponse, error)
	}

	StatusHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetStatusHistoryQuery) ([]queries.GetStatusHistoryQueryResponse, error)
	}

	NotificationsHandler interface {
		Handle(ctx context.Context, query queries.GetNotificationsQuery) ([]notification.Notification, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateRequest        CreateRequestHandler
	CreateDonation       CreateDonationHandler
	Transition           TransitionHandler
	FindVolunteers       FindVolunteersHandler
	VolunteerAssignments VolunteerAssignmentsHandler
	StatusHistory        StatusHistoryHandler
	Notifications        NotificationsHandler
}

// Server translates HTTP calls into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

type (
	createdResponse struct {
		ID string `json:"id"`
	}

	transitionResponse struct {
		PreviousStatus string  `json:"previousStatus"`
		NewStatus      string  `json:"newStatus"`
		DonationID     *string `json:"donationId,omitempty"`
	}

	denyBody struct {
		Reason string `json:"reason"`
	}

	decisionBody struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
		Reason  string `json:"reason"`
	}

	claimBody struct {
		Address string `json:"address"`
		Contact string `json:"contact"`
	}

	donationStatusBody struct {
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}

	volunteerResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Contact  string `json:"contact"`
		City     string `json:"city"`
		Approved bool   `json:"approved"`
	}

	assignmentResponse struct {
		EntityType string    `json:"entityType"`
		EntityID   string    `json:"entityId"`
		Statuses   []string  `json:"statuses"`
		Latest     string    `json:"latest"`
		CreatedAt  time.Time `json:"createdAt"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	statusEventResponse struct {
		EntityType string         `json:"entityType"`
		From       string         `json:"from"`
		To         string         `json:"to"`
		ActorID    string         `json:"actorId"`
		OccurredAt time.Time      `json:"occurredAt"`
		Extra      map[string]any `json:"extra"`
	}

	notificationResponse struct {
		ID        string         `json:"id"`
		Type      string         `json:"type"`
		Title     string         `json:"title"`
		Message   string         `json:"message"`
		Data      map[string]any `json:"data"`
		Read      bool           `json:"read"`
		CreatedAt time.Time      `json:"createdAt"`
	}
)

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var input commands.CreateRequestInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, actorFrom(c), input)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CreateRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

// CreateDonation handles POST /api/v1/donations.
func (s *Server) CreateDonation(c echo.Context) error {
	var input commands.CreateDonationInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDonationCommand(id, actorFrom(c), input)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CreateDonation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

// AcceptRequest handles POST /api/v1/requests/:id/accept.
func (s *Server) AcceptRequest(c echo.Context) error {
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewAcceptRequestCommand(id, actor)
	})
}

// DenyRequest handles POST /api/v1/requests/:id/deny. The body is optional.
func (s *Server) DenyRequest(c echo.Context) error {
	var body denyBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewDenyRequestCommand(id, actor, body.Reason)
	})
}

// MarkReached handles POST /api/v1/requests/:id/reached.
func (s *Server) MarkReached(c echo.Context) error {
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewMarkReachedCommand(id, actor)
	})
}

// Decide handles POST /api/v1/requests/:id/decision.
func (s *Server) Decide(c echo.Context) error {
	var body decisionBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewDecideCommand(id, actor, body.Approve, body.Notes, body.Reason)
	})
}

// DonorClaim handles POST /api/v1/requests/:id/claim.
func (s *Server) DonorClaim(c echo.Context) error {
	var body claimBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewDonorClaimCommand(id, actor, body.Address, body.Contact)
	})
}

// UpdateDonationStatus handles POST /api/v1/donations/:id/status.
func (s *Server) UpdateDonationStatus(c echo.Context) error {
	var body donationStatusBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.transition(c, func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error) {
		return commands.NewUpdateDonationStatusCommand(id, actor, body.Status, body.Feedback)
	})
}

func (s *Server) transition(
	c echo.Context,
	build func(id kernel.UUID, actor kernel.Actor) (commands.ProposeTransitionCommand, error),
) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := build(id, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.Transition.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	response := transitionResponse{PreviousStatus: result.PreviousStatus, NewStatus: result.NewStatus}
	if result.SpawnedDonationID != nil {
		donationID := result.SpawnedDonationID.String()
		response.DonationID = &donationID
	}
	return c.JSON(http.StatusOK, response)
}

// FindVolunteers handles GET /api/v1/volunteers?city=&requireApproved=.
// FindVolunteers returns the volunteers of a city. requireApproved defaults to
// true; callers pass requireApproved=false to list everyone in the city.
func (s *Server) FindVolunteers(c echo.Context) error {
	requireApproved := true
	if raw := c.QueryParam("requireApproved"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "requireApproved must be a boolean")
		}
		requireApproved = parsed
	}

	query, err := queries.NewFindVolunteersQuery(c.QueryParam("city"), requireApproved)
	if err != nil {
		return s.fail(c, err)
	}

	volunteers, err := s.handlers.FindVolunteers.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]volunteerResponse, len(volunteers))
	for i, v := range volunteers {
		response[i] = volunteerResponse{
			ID:       v.ID.String(),
			Name:     v.Name,
			Email:    v.Email,
			Contact:  v.Contact,
			City:     v.City,
			Approved: v.Approved,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetVolunteerAssignments handles GET /api/v1/volunteers/:id/assignments.
func (s *Server) GetVolunteerAssignments(c echo.Context) error {
	volunteerID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetVolunteerAssignmentsQuery(volunteerID)
	if err != nil {
		return s.fail(c, err)
	}

	records, err := s.handlers.VolunteerAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]assignmentResponse, len(records))
	for i, r := range records {
		response[i] = assignmentResponse{
			EntityType: r.EntityType.String(),
			EntityID:   r.EntityID.String(),
			Statuses:   r.Statuses,
			Latest:     r.Latest,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetStatusHistory handles GET /api/v1/history/:id.
func (s *Server) GetStatusHistory(c echo.Context) error {
	entityID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetStatusHistoryQuery(entityID)
	if err != nil {
		return s.fail(c, err)
	}

	events, err := s.handlers.StatusHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]statusEventResponse, len(events))
	for i, e := range events {
		response[i] = statusEventResponse{
			EntityType: e.EntityType.String(),
			From:       e.FromStatus,
			To:         e.ToStatus,
			ActorID:    e.ActorID.String(),
			OccurredAt: e.OccurredAt,
			Extra:      e.Extra,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications for the calling actor.
func (s *Server) GetNotifications(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetNotificationsQuery(actorFrom(c).ID(), limit)
	if err != nil {
		return s.fail(c, err)
	}

	items, err := s.handlers.Notifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]notificationResponse, len(items))
	for i, n := range items {
		response[i] = notificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
