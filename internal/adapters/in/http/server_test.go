package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "aidmatch/internal/adapters/in/http"
	"aidmatch/internal/adapters/out/memory"
	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/notification"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type requestUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (u requestUoWFactory) Create() commands.RequestUoW { return u.f.Create() }

type donationUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (u donationUoWFactory) Create() commands.DonationUoW { return u.f.Create() }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...event.Event) {}

type api struct {
	t     *testing.T
	store *memory.Store
	e     *echo.Echo
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	factory := store.UnitOfWorkFactory()

	createRequest := commands.NewCreateRequestCommandHandler(requestUoWFactory{factory}, nopPublisher{}, nil)
	createDonation := commands.NewCreateDonationCommandHandler(donationUoWFactory{factory}, nopPublisher{}, nil)
	transition := commands.NewProposeTransitionCommandHandler(uowFactory{factory}, nopPublisher{}, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateRequest:        &createRequest,
		CreateDonation:       &createDonation,
		Transition:           &transition,
		FindVolunteers:       queries.NewFindVolunteersQueryHandler(store.Profiles(), services.NewVolunteerMatcher(true)),
		VolunteerAssignments: queries.NewGetVolunteerAssignmentsQueryHandler(store.Assignments()),
		StatusHistory:        queries.NewGetStatusHistoryQueryHandler(store.StatusEvents()),
		Notifications:        queries.NewGetNotificationsQueryHandler(store.Notifications()),
	}, logger)

	contract, err := httpadapter.LoadContract(t.Context())
	require.NoError(t, err)
	e, err := httpadapter.NewEcho(server, contract)
	require.NoError(t, err)

	return &api{t: t, store: store, e: e}
}

func (a *api) actor(role kernel.Role) kernel.Actor {
	a.t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(a.t, err)
	return actor
}

func (a *api) volunteer(city string, approved bool) kernel.Actor {
	a.t.Helper()
	actor := a.actor(kernel.RoleVolunteer)
	c, err := kernel.NewCity(city)
	require.NoError(a.t, err)
	p, err := profile.RestoreProfile(profile.State{
		ID: actor.ID(), Role: kernel.RoleVolunteer, Name: "Asha", Email: "asha@example.org", City: c, Approved: approved,
	})
	require.NoError(a.t, err)
	require.NoError(a.t, a.store.SaveProfile(p))
	return actor
}

func (a *api) do(method, path string, actor *kernel.Actor, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(httpadapter.HeaderActorID, actor.ID().String())
		req.Header.Set(httpadapter.HeaderActorRole, actor.Role().String())
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const newRequestBody = `{
	"initiative": "food",
	"city": "Vijayawada",
	"address": "4 Station Road",
	"beneficiaryName": "Lakshmi",
	"description": "rice for a family of four",
	"urgency": "high"
}`

func (a *api) createRequest(requester kernel.Actor) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/requests", &requester, newRequestBody)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]string](a.t, rec)["id"]
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestContractIsServed(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/v1/openapi.yaml", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

func TestRequireActor(t *testing.T) {
	a := newAPI(t)

	t.Run("missing headers", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/requests", nil, newRequestBody)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
		req.Header.Set(httpadapter.HeaderActorID, kernel.NewUUID().String())
		req.Header.Set(httpadapter.HeaderActorRole, "superuser")
		rec := httptest.NewRecorder()
		a.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateRequest(t *testing.T) {
	a := newAPI(t)
	community := a.actor(kernel.RoleCommunity)

	t.Run("created", func(t *testing.T) {
		id := a.createRequest(community)

		requestID, err := kernel.UUIDFromString(id)
		require.NoError(t, err)
		stored, err := a.store.Requests().Get(t.Context(), requestID)
		require.NoError(t, err)
		assert.Equal(t, "pending", stored.Status().String())
	})

	t.Run("unknown field is rejected by the contract", func(t *testing.T) {
		body := strings.Replace(newRequestBody, `"urgency": "high"`, `"urgency": "high", "priority": 1`, 1)

		rec := a.do(http.MethodPost, "/api/v1/requests", &community, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/requests", &community, `{"initiative":"food","city":"Guntur"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		donor := a.actor(kernel.RoleDonor)

		rec := a.do(http.MethodPost, "/api/v1/requests", &donor, newRequestBody)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	a := newAPI(t)
	community := a.actor(kernel.RoleCommunity)
	volunteer := a.volunteer("Vijayawada", true)
	donor := a.actor(kernel.RoleDonor)
	id := a.createRequest(community)

	rec := a.do(http.MethodPost, "/api/v1/requests/"+id+"/accept", &volunteer, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"previousStatus": "pending", "newStatus": "VOLUNTEER_ACCEPTED"},
		decode[map[string]any](t, rec))

	other := a.volunteer("Vijayawada", true)
	rec = a.do(http.MethodPost, "/api/v1/requests/"+id+"/accept", &other, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(http.MethodPost, "/api/v1/requests/"+id+"/claim", &donor, `{"address":"12 MG Road"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "claim before approval is an invalid transition")

	rec = a.do(http.MethodPost, "/api/v1/requests/"+id+"/reached", &volunteer, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/requests/"+id+"/decision", &volunteer, `{"approve":true,"notes":"verified"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/requests/"+id+"/claim", &donor, `{"address":"12 MG Road","contact":"d@example.org"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claimed := decode[map[string]any](t, rec)
	assert.Equal(t, "DONOR_CLAIMED", claimed["newStatus"])
	donationID, ok := claimed["donationId"].(string)
	require.True(t, ok)

	rec = a.do(http.MethodPost, "/api/v1/donations/"+donationID+"/status", &donor, `{"status":"accepted"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPost, "/api/v1/donations/"+donationID+"/status", &volunteer, `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/donations/"+donationID+"/status", &volunteer, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "status outside the contract enum")

	rec = a.do(http.MethodGet, "/api/v1/volunteers/"+volunteer.ID().String()+"/assignments", &volunteer, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assignments := decode[[]map[string]any](t, rec)
	assert.Len(t, assignments, 2)
}

func TestTransitionErrors(t *testing.T) {
	a := newAPI(t)
	volunteer := a.volunteer("Guntur", true)

	t.Run("unknown request", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/requests/"+kernel.NewUUID().String()+"/accept", &volunteer, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("decision without body", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/requests/"+kernel.NewUUID().String()+"/decision", &volunteer, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/requests/not-a-uuid/reached", &volunteer, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateDonation(t *testing.T) {
	a := newAPI(t)
	donor := a.actor(kernel.RoleDonor)

	rec := a.do(http.MethodPost, "/api/v1/donations", &donor,
		`{"initiative":"clothing","city":"Guntur","donorAddress":"7 Canal Road","description":"winter jackets"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[map[string]string](t, rec)["id"])
}

func TestFindVolunteers(t *testing.T) {
	a := newAPI(t)
	caller := a.actor(kernel.RoleCommunity)
	approved := a.volunteer("Vijayawada", true)
	a.volunteer("VIJAYAWADA", false)
	a.volunteer("Guntur", true)

	t.Run("approved only", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/volunteers?city=vijayawada&requireApproved=true", &caller, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[[]map[string]any](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, approved.ID().String(), got[0]["id"])
	})

	t.Run("approval is required by default", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/volunteers?city=Vijayawada", &caller, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[[]map[string]any](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, approved.ID().String(), got[0]["id"])
		assert.Equal(t, true, got[0]["approved"])
	})

	t.Run("all in city when approval is waived", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/volunteers?city=%20Vijayawada%20&requireApproved=false", &caller, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Len(t, decode[[]map[string]any](t, rec), 2)
	})

	t.Run("city is required", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/volunteers", &caller, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStatusHistoryAndNotifications(t *testing.T) {
	a := newAPI(t)
	caller := a.actor(kernel.RoleCommunity)
	entityID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := a.store.StatusEvents().Append(t.Context(), audit.StatusEvent{
		EntityID: entityID, EntityType: kernel.EntityRequest, FromStatus: "pending", ToStatus: "VOLUNTEER_ACCEPTED",
		ActorID: kernel.NewUUID(), OccurredAt: at, Extra: map[string]any{},
	})
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		n, nErr := notification.New(caller.ID(), notification.TypeRequestAccepted, title, "", nil, at)
		require.NoError(t, nErr)
		require.NoError(t, a.store.Notifications().Add(t.Context(), n))
	}

	rec := a.do(http.MethodGet, "/api/v1/history/"+entityID.String(), &caller, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	history := decode[[]map[string]any](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, "VOLUNTEER_ACCEPTED", history[0]["to"])

	rec = a.do(http.MethodGet, "/api/v1/notifications?limit=1", &caller, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	inbox := decode[[]map[string]any](t, rec)
	require.Len(t, inbox, 1)
	assert.Equal(t, "two", inbox[0]["title"])

	rec = a.do(http.MethodGet, "/api/v1/notifications?limit=500", &caller, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
