package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/pkg/serverutils"
	"household-sync-be/internal/service"
	"household-sync-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	register(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

type stubGroupService struct {
	upserted *dto.UpsertGroupRequest
}

func (s *stubGroupService) Upsert(ctx context.Context, req *dto.UpsertGroupRequest) (*dto.UpsertGroupResponse, error) {
	s.upserted = req
	return &dto.UpsertGroupResponse{Id: req.Id}, nil
}

func (s *stubGroupService) Show(ctx context.Context, id string) (*dto.ShowGroupResponse, error) {
	if id != "g1" {
		return nil, service.ErrGroupNotFound
	}
	return &dto.ShowGroupResponse{Id: "g1", Name: "Flat 3B"}, nil
}

func (s *stubGroupService) Delete(ctx context.Context, id string) error {
	if id == "boom" {
		return errors.New("db down")
	}
	return nil
}

func TestGroupController(t *testing.T) {
	svc := &stubGroupService{}
	app := newTestApp(NewGroupController(svc).RegisterRoutes)

	status, body := doJSON(t, app, http.MethodPost, "/api/group/v1",
		`{"id":"g1","name":"Flat 3B","chores":[{"id":"c1","name":"Dishes"}]}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	require.NotNil(t, svc.upserted)
	assert.Len(t, svc.upserted.Chores, 1)

	status, body = doJSON(t, app, http.MethodPost, "/api/group/v1", `{"name":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = doJSON(t, app, http.MethodGet, "/api/group/v1/g1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Flat 3B", body["data"].(map[string]interface{})["name"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/group/v1/missing", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/group/v1/g1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/group/v1/boom", "")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestExtractionController(t *testing.T) {
	svc := service.NewExtractionService(extract.NewRecipeNoteParser(), logger.NewNopLogger())
	app := newTestApp(NewExtractionController(svc).RegisterRoutes)

	status, body := doJSON(t, app, http.MethodPost, "/api/extract/v1/ingredients",
		`{"text":"{\"ingredients\":[\"egg\",\"Egg\",\"  milk \"]}"}`)
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Egg", "Milk"}, data["ingredients"])

	status, body = doJSON(t, app, http.MethodPost, "/api/extract/v1/recipe-notes",
		`{"text":"dishName=Pancakes\ndifficulty=Easy"}`)
	assert.Equal(t, http.StatusOK, status)
	notes := body["data"].(map[string]interface{})["notes"].([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, "Pancakes", notes[0].(map[string]interface{})["dish_name"])

	status, body = doJSON(t, app, http.MethodPost, "/api/extract/v1/ingredients", `{"text":""}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["data"].(map[string]interface{})["ingredients"])
}

type stubPollService struct {
	subscribed []dto.PollTargetRequest
	reset      []dto.PollTargetRequest
}

func (s *stubPollService) Subscribe(ctx context.Context, req *dto.PollTargetRequest) error {
	s.subscribed = append(s.subscribed, *req)
	return nil
}

func (s *stubPollService) Unsubscribe(ctx context.Context, req *dto.PollTargetRequest) error {
	return nil
}

func (s *stubPollService) Run(ctx context.Context, req *dto.PollTargetRequest) *dto.PollRunResponse {
	return &dto.PollRunResponse{Result: "retry"}
}

func (s *stubPollService) Reset(ctx context.Context, req *dto.PollTargetRequest) error {
	s.reset = append(s.reset, *req)
	return nil
}

func (s *stubPollService) EnqueueAll(ctx context.Context) (*dto.PollTriggerResponse, error) {
	return &dto.PollTriggerResponse{Enqueued: len(s.subscribed)}, nil
}

func TestPollController(t *testing.T) {
	svc := &stubPollService{}
	app := newTestApp(NewPollController(svc).RegisterRoutes)
	target := `{"group_id":"g1","device_id":"d1"}`

	status, _ := doJSON(t, app, http.MethodPost, "/api/poll/v1/subscriptions", target)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, svc.subscribed, 1)

	status, _ = doJSON(t, app, http.MethodPost, "/api/poll/v1/subscriptions", `{"group_id":"g1"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/poll/v1/run", target)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "retry", body["data"].(map[string]interface{})["result"])

	status, body = doJSON(t, app, http.MethodPost, "/api/poll/v1/trigger", "")
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["enqueued"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/poll/v1/reset", target)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, svc.reset, 1)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/poll/v1/subscriptions", target)
	assert.Equal(t, http.StatusOK, status)
}
