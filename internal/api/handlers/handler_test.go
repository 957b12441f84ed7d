package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/middleware"
	"volunteerhub-backend/internal/utils"
	"volunteerhub-backend/internal/utils/storage"
	"volunteerhub-backend/pkg/dashboard"
	"volunteerhub-backend/pkg/event"
	"volunteerhub-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	event.EventService

	registerErr error
	registered  []string
}

func (f *fakeEventService) Register(_ context.Context, actor domain.Actor, eventID string) (*domain.RegistrationResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, actor.ID+":"+eventID)
	return &domain.RegistrationResponse{ID: "r-1", VolunteerID: actor.ID, EventID: eventID, Status: "registered"}, nil
}

func (f *fakeEventService) CreateEvent(_ context.Context, actor domain.Actor, req domain.CreateEventRequest) (*domain.EventResponse, error) {
	approved := actor.Role == domain.RoleAdmin
	return &domain.EventResponse{ID: "e-1", Title: req.Title, IsApproved: approved}, nil
}

type fakeManagerService struct {
	user.ManagerService

	applied []domain.ManagerApplicationRequest
	roles   map[string]string
}

func (f *fakeManagerService) Apply(_ context.Context, actor domain.Actor, req domain.ManagerApplicationRequest) (*domain.UserResponse, error) {
	f.applied = append(f.applied, req)
	return &domain.UserResponse{ID: actor.ID, Role: domain.RoleVolunteer, RequestedRole: domain.RoleManager}, nil
}

func (f *fakeManagerService) UpdateRole(_ context.Context, actor domain.Actor, userID string, req domain.UpdateRoleRequest) (*domain.UserResponse, error) {
	if actor.ID == userID {
		return nil, domain.ErrChangeOwnRole
	}
	f.roles[userID] = req.Role
	return &domain.UserResponse{ID: userID, Role: domain.Role(req.Role)}, nil
}

type fakeDashboardService struct {
	dashboard.DashboardService
}

func (f *fakeDashboardService) Export(_ context.Context, exportType string) (*domain.ExportTable, error) {
	if exportType != "users" {
		return nil, domain.ErrInvalidExportType
	}
	return &domain.ExportTable{
		Type:    "users",
		Headers: []string{"name", "email"},
		Rows:    [][]string{{"Ana", "ana@example.com"}},
		Records: []map[string]any{{"name": "Ana", "email": "ana@example.com"}},
	}, nil
}

func asVolunteer(c *fiber.Ctx) error {
	c.Locals(middleware.LocalUserID, "u-1")
	c.Locals(middleware.LocalRole, string(domain.RoleVolunteer))
	c.Locals(middleware.LocalUserName, "Vol")
	return c.Next()
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	res, err := app.Test(req)
	require.NoError(t, err)
	return res.StatusCode, decode(t, res.Body)
}

func newEventApp(svc *fakeEventService) *fiber.App {
	utils.InitValidator()
	h := NewEventHandler(svc, utils.Validate)
	app := fiber.New()
	app.Post("/events/register", asVolunteer, h.Register)
	return app
}

func TestEventRegisterSuccess(t *testing.T) {
	svc := &fakeEventService{}
	app := newEventApp(svc)

	status, body := postJSON(t, app, "/events/register", `{"eventId":"6f1c2b8e-4a1f-4c55-9a43-2f1d6c8b9a10"}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, domain.MessageSuccessRegisterEvent, body["message"])
	assert.Equal(t, []string{"u-1:6f1c2b8e-4a1f-4c55-9a43-2f1d6c8b9a10"}, svc.registered)
}

func TestEventRegisterValidation(t *testing.T) {
	svc := &fakeEventService{}
	app := newEventApp(svc)

	status, body := postJSON(t, app, "/events/register", `{"eventId":"nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, domain.MessageValidationFailed, body["message"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "eventId", errs[0].(map[string]any)["field"])

	status, body = postJSON(t, app, "/events/register", `{"eventId":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, domain.MessageFailedBodyRequest, body["message"])

	assert.Empty(t, svc.registered)
}

func TestEventRegisterDomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrEventFull, fiber.StatusBadRequest, "Event is at full capacity"},
		{domain.ErrAlreadyRegistered, fiber.StatusBadRequest, "Already registered for this event"},
		{domain.ErrEventNotFound, fiber.StatusNotFound, "Event not found"},
		{assert.AnError, fiber.StatusInternalServerError, domain.MessageFailedRegisterEvent},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			app := newEventApp(&fakeEventService{registerErr: tc.err})
			status, body := postJSON(t, app, "/events/register", `{"eventId":"6f1c2b8e-4a1f-4c55-9a43-2f1d6c8b9a10"}`)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, false, body["success"])
			assert.Nil(t, body["error"])
		})
	}
}

func TestFailureMapsUploadErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/:case", func(c *fiber.Ctx) error {
		switch c.Params("case") {
		case "large":
			return failure(c, "upload failed", storage.ErrFileTooLarge)
		case "type":
			return failure(c, "upload failed", storage.ErrFileTypeNotAllowed)
		default:
			return failure(c, "upload failed", storage.ErrStorageNotConfigured)
		}
	})

	for path, want := range map[string]int{
		"/large": fiber.StatusBadRequest,
		"/type":  fiber.StatusBadRequest,
		"/off":   fiber.StatusServiceUnavailable,
	} {
		res, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, res.StatusCode, path)
	}
}

func TestDashboardExport(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardService{})
	app := fiber.New()
	app.Get("/export", h.Export)

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/export?type=users&format=csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "text/csv", res.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, res.Header.Get(fiber.HeaderContentDisposition), "users_export.csv")
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "name,email\nAna,ana@example.com\n", string(raw))

	res, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/export?type=users", nil))
	require.NoError(t, err)
	assert.Equal(t, "application/json", res.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, res.Header.Get(fiber.HeaderContentDisposition), "users_export.json")

	res, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/export?type=secrets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid export type", decode(t, res.Body)["message"])
}

func TestCreateEventToast(t *testing.T) {
	utils.InitValidator()
	h := NewEventHandler(&fakeEventService{}, utils.Validate)
	asManager := func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, "m-1")
		c.Locals(middleware.LocalRole, string(domain.RoleManager))
		return c.Next()
	}
	asAdmin := func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, "a-1")
		c.Locals(middleware.LocalRole, string(domain.RoleAdmin))
		return c.Next()
	}
	app := fiber.New()
	app.Post("/manager/events", asManager, h.CreateEvent)
	app.Post("/admin/events", asAdmin, h.CreateEvent)
	body := `{"title":"Park cleanup","description":"Pick up litter","category":"Environment","date":"2026-11-20","startTime":"09:00","endTime":"12:00","location":"City park","capacity":5}`

	status, res := postJSON(t, app, "/manager/events", body)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "warning", res["toastType"])
	assert.Equal(t, domain.MessageSuccessCreateEventPending, res["message"])

	status, res = postJSON(t, app, "/admin/events", body)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", res["toastType"])
	assert.Equal(t, domain.MessageSuccessCreateEvent, res["message"])
}

func TestManagerApplicationHandlers(t *testing.T) {
	utils.InitValidator()
	svc := &fakeManagerService{roles: map[string]string{}}
	h := NewManagerHandler(svc, utils.Validate)
	app := fiber.New()
	app.Post("/manager-application", asVolunteer, h.Apply)
	app.Put("/users/:id/role", asVolunteer, h.UpdateRole)

	// the body is optional
	req := httptest.NewRequest(fiber.MethodPost, "/manager-application", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	body := decode(t, res.Body)
	assert.Equal(t, "info", body["toastType"])
	assert.Equal(t, "manager", body["data"].(map[string]any)["requestedRole"])

	status, body := postJSON(t, app, "/manager-application", `{"reason":"I coordinate the youth club"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	require.Len(t, svc.applied, 2)
	assert.Equal(t, "I coordinate the youth club", svc.applied[1].Reason)

	put := func(path, payload string) (int, map[string]any) {
		req := httptest.NewRequest(fiber.MethodPut, path, strings.NewReader(payload))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		res, err := app.Test(req)
		require.NoError(t, err)
		return res.StatusCode, decode(t, res.Body)
	}

	status, body = put("/users/u-2/role", `{"role":"owner"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, domain.MessageValidationFailed, body["message"])

	status, body = put("/users/u-1/role", `{"role":"volunteer"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, domain.ErrChangeOwnRole.Message, body["message"])

	status, _ = put("/users/u-2/role", `{"role":"manager"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "manager", svc.roles["u-2"])
}
