package storagehandler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennvr/console/internal/domain/models"
)

type stubStorageService struct {
	testResult models.ConnectionTestResult
}

func (s *stubStorageService) Configs() ([]models.StorageConfig, error) {
	return []models.StorageConfig{}, nil
}

func (s *stubStorageService) SaveConfig(req models.CreateStorageConfig) (models.StorageConfig, error) {
	return models.StorageConfig{}, nil
}

func (s *stubStorageService) UpdateConfig(id string, upd models.UpdateStorageConfig) (models.StorageConfig, error) {
	return models.StorageConfig{}, nil
}

func (s *stubStorageService) DeleteConfig(id string) error {
	return nil
}

func (s *stubStorageService) TestConnection(req models.ConnectionTest) models.ConnectionTestResult {
	return s.testResult
}

func newRouter(svc Storage) *chi.Mux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(log, svc)

	router := chi.NewRouter()
	router.Post("/api/storage/test", handler.TestConnection)

	return router
}

func TestTestConnection_MissingFields(t *testing.T) {
	svc := &stubStorageService{testResult: models.ConnectionTestResult{
		Success: false,
		Message: "missing s3 fields: endpoint, bucket, accessKey, secretKey",
	}}

	body := `{"type":"s3","config":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/storage/test", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result models.ConnectionTestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "endpoint")
	assert.Contains(t, result.Message, "secretKey")
}

func TestTestConnection_Valid(t *testing.T) {
	svc := &stubStorageService{testResult: models.ConnectionTestResult{
		Success: true,
		Message: "configuration validated (connection test not yet implemented)",
	}}

	body := `{"type":"local","config":{"path":"/data"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/storage/test", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ConnectionTestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.True(t, result.Success)
}

func TestTestConnection_UnknownType(t *testing.T) {
	svc := &stubStorageService{}

	body := `{"type":"tape","config":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/storage/test", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Type")
}
