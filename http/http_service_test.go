package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nodaire/dashhub/api"
	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/logger"
	"github.com/nodaire/dashhub/state"
	testdb "github.com/nodaire/dashhub/tests/db"
	"github.com/nodaire/dashhub/tests/mocks"
)

// Helper to create a fully configured HttpService for testing
func createTestHttpService(t *testing.T, env *config.AppConfig) (*echo.Echo, *mocks.MockBackendClient, *state.Manager, events.EventPublisher) {
	logger.Init("4")

	gormDB, err := testdb.NewDB(t)
	require.NoError(t, err)
	t.Cleanup(func() { testdb.CloseDB(gormDB) })

	cfg, err := config.NewConfig(env, gormDB)
	require.NoError(t, err)

	eventPublisher := events.NewEventPublisher()
	mockClient := mocks.NewMockBackendClient(t)
	stateManager := state.NewManager(context.Background(), mockClient, eventPublisher)

	mockSvc := mocks.NewMockService(t)
	mockSvc.On("GetConfig").Return(cfg)
	mockSvc.On("GetStateManager").Return(stateManager)

	httpSvc := NewHttpService(mockSvc, eventPublisher)
	e := echo.New()
	httpSvc.RegisterSharedRoutes(e)

	return e, mockClient, stateManager, eventPublisher
}

func TestInfoHandler(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{BackendURL: "http://backend:9090"})

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var infoResponse api.InfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infoResponse))
	assert.Equal(t, "http://backend:9090", infoResponse.BackendUrl)
	assert.False(t, infoResponse.AuthEnabled)
	assert.NotEmpty(t, infoResponse.Version)
}

func TestStoreHandlerEmptyStore(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/store", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var storeResponse api.StoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &storeResponse))
	assert.Nil(t, storeResponse.Config.Data)
	assert.False(t, storeResponse.Config.Loading)
	assert.Empty(t, storeResponse.Config.Error)
}

func TestSliceHandler(t *testing.T) {
	e, mockClient, stateManager, _ := createTestHttpService(t, &config.AppConfig{})

	mockClient.On("FetchStatus", mock.Anything).Return(&backend.StatusResponse{Healthy: true}, nil).Once()
	stateManager.LoadStatus(false)
	require.Eventually(t, func() bool {
		slice := stateManager.Snapshot().Slice(state.SliceStatus)
		return !slice.Loading && slice.Data != nil
	}, 2*time.Second, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/store/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sliceResponse api.SliceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sliceResponse))
	require.NotNil(t, sliceResponse.Data)
	assert.False(t, sliceResponse.Loading)
}

func TestSliceHandlerUnknownSlice(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/store/channels", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadSliceHandler(t *testing.T) {
	e, mockClient, stateManager, _ := createTestHttpService(t, &config.AppConfig{})

	graphResponse := &backend.GraphResponse{Nodes: []backend.GraphNode{{ID: "web"}}}
	mockClient.On("FetchGraph", mock.Anything).Return(graphResponse, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/store/graph/load", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		slice := stateManager.Snapshot().Slice(state.SliceGraph)
		return !slice.Loading && slice.Data == graphResponse
	}, 2*time.Second, 5*time.Millisecond)
}

func TestLoadSliceHandlerCoalesces(t *testing.T) {
	e, mockClient, stateManager, _ := createTestHttpService(t, &config.AppConfig{})

	mockClient.On("FetchLogs", mock.Anything).Return(&backend.LogResponse{}, nil).Once()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/store/logs/load", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusAccepted, rec.Code)

		require.Eventually(t, func() bool {
			slice := stateManager.Snapshot().Slice(state.SliceLogs)
			return !slice.Loading && slice.Data != nil
		}, 2*time.Second, 5*time.Millisecond)
	}

	mockClient.AssertNumberOfCalls(t, "FetchLogs", 1)
}

func TestLoadSliceHandlerForce(t *testing.T) {
	e, mockClient, stateManager, _ := createTestHttpService(t, &config.AppConfig{})

	mockClient.On("FetchLogs", mock.Anything).Return(&backend.LogResponse{}, nil).Twice()

	for _, target := range []string{"/api/store/logs/load", "/api/store/logs/load?force=true"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusAccepted, rec.Code)

		require.Eventually(t, func() bool {
			slice := stateManager.Snapshot().Slice(state.SliceLogs)
			return !slice.Loading && slice.Data != nil
		}, 2*time.Second, 5*time.Millisecond)
	}

	mockClient.AssertNumberOfCalls(t, "FetchLogs", 2)
}

func TestLoadSliceHandlerUnknownSlice(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/store/bogus/load", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBackendURLHandler(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{BackendURL: "http://old:9090"})

	body, err := json.Marshal(api.UpdateBackendURLRequest{Url: "http://new:9090"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/backend-url", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var infoResponse api.InfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infoResponse))
	assert.Equal(t, "http://new:9090", infoResponse.BackendUrl)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{DashboardPassword: "hunter2"})

	body, err := json.Marshal(map[string]string{"password": "wrong"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{})

	body, err := json.Marshal(map[string]string{"password": "anything"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{DashboardPassword: "hunter2"})

	req := httptest.NewRequest(http.MethodGet, "/api/store", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
}

func TestLoginAndAccessProtectedRoute(t *testing.T) {
	e, _, _, _ := createTestHttpService(t, &config.AppConfig{DashboardPassword: "hunter2"})

	body, err := json.Marshal(map[string]string{"password": "hunter2"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tokenResponse authTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenResponse))
	require.NotEmpty(t, tokenResponse.Token)

	req = httptest.NewRequest(http.MethodGet, "/api/store", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tokenResponse.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
