package storageservice

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
)

type fakeConfigStorage struct {
	configs []models.StorageConfig
	nextID  int
}

func (f *fakeConfigStorage) Configs() ([]models.StorageConfig, error) {
	return f.configs, nil
}

func (f *fakeConfigStorage) Save(cfg models.CreateStorageConfig) (models.StorageConfig, error) {
	f.nextID++
	saved := models.StorageConfig{
		ID:       fmt.Sprintf("cfg-%d", f.nextID),
		Type:     cfg.Type,
		Name:     cfg.Name,
		Config:   cfg.Config,
		IsActive: cfg.IsActive,
	}
	f.configs = append(f.configs, saved)

	return saved, nil
}

func (f *fakeConfigStorage) Update(id string, upd models.UpdateStorageConfig) (models.StorageConfig, error) {
	for i := range f.configs {
		if f.configs[i].ID != id {
			continue
		}

		if upd.Type != nil {
			f.configs[i].Type = *upd.Type
		}
		if upd.Name != nil {
			f.configs[i].Name = *upd.Name
		}
		if upd.Config != nil {
			f.configs[i].Config = upd.Config
		}
		if upd.IsActive != nil {
			f.configs[i].IsActive = *upd.IsActive
		}

		return f.configs[i], nil
	}

	return models.StorageConfig{}, errs.ErrConfigNotFound
}

func (f *fakeConfigStorage) DeactivateAll() error {
	for i := range f.configs {
		f.configs[i].IsActive = false
	}

	return nil
}

func (f *fakeConfigStorage) Delete(id string) error {
	for i := range f.configs {
		if f.configs[i].ID == id {
			f.configs = append(f.configs[:i], f.configs[i+1:]...)

			return nil
		}
	}

	return errs.ErrConfigNotFound
}

func newService(store *fakeConfigStorage) *StorageService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, store)
}

func activeIDs(configs []models.StorageConfig) []string {
	var ids []string
	for _, cfg := range configs {
		if cfg.IsActive {
			ids = append(ids, cfg.ID)
		}
	}

	return ids
}

func TestUpdateConfig_ActivationLeavesSingleActive(t *testing.T) {
	store := &fakeConfigStorage{}
	svc := newService(store)

	a, err := svc.SaveConfig(models.CreateStorageConfig{Type: "local", Name: "A"})
	require.NoError(t, err)
	_, err = svc.SaveConfig(models.CreateStorageConfig{Type: "ftp", Name: "B"})
	require.NoError(t, err)
	_, err = svc.SaveConfig(models.CreateStorageConfig{Type: "s3", Name: "C", IsActive: true})
	require.NoError(t, err)

	active := true
	_, err = svc.UpdateConfig(a.ID, models.UpdateStorageConfig{IsActive: &active})
	require.NoError(t, err)

	configs, err := svc.Configs()
	require.NoError(t, err)

	assert.Equal(t, []string{a.ID}, activeIDs(configs))
}

func TestSaveConfig_ActiveDeactivatesOthers(t *testing.T) {
	store := &fakeConfigStorage{}
	svc := newService(store)

	_, err := svc.SaveConfig(models.CreateStorageConfig{Type: "local", Name: "A", IsActive: true})
	require.NoError(t, err)

	b, err := svc.SaveConfig(models.CreateStorageConfig{Type: "s3", Name: "B", IsActive: true})
	require.NoError(t, err)

	configs, err := svc.Configs()
	require.NoError(t, err)

	assert.Equal(t, []string{b.ID}, activeIDs(configs))
}

func TestUpdateConfig_NotFound(t *testing.T) {
	svc := newService(&fakeConfigStorage{})

	name := "renamed"
	_, err := svc.UpdateConfig("missing", models.UpdateStorageConfig{Name: &name})

	assert.ErrorIs(t, err, errs.ErrConfigNotFound)
}

func TestTestConnection(t *testing.T) {
	svc := newService(&fakeConfigStorage{})

	cases := []struct {
		name        string
		req         models.ConnectionTest
		wantSuccess bool
		wantInMsg   []string
	}{
		{
			name:        "s3 empty payload",
			req:         models.ConnectionTest{Type: "s3", Config: models.StorageSettings{}},
			wantSuccess: false,
			wantInMsg:   []string{"endpoint", "bucket", "accessKey", "secretKey"},
		},
		{
			name: "s3 complete payload",
			req: models.ConnectionTest{Type: "s3", Config: models.StorageSettings{
				"endpoint": "minio:9000", "bucket": "clips", "accessKey": "ak", "secretKey": "sk",
			}},
			wantSuccess: true,
		},
		{
			name:        "ftp missing password",
			req:         models.ConnectionTest{Type: "ftp", Config: models.StorageSettings{"host": "ftp.local", "username": "nvr"}},
			wantSuccess: false,
			wantInMsg:   []string{"password"},
		},
		{
			name:        "http with url",
			req:         models.ConnectionTest{Type: "http", Config: models.StorageSettings{"url": "https://archive.local/upload"}},
			wantSuccess: true,
		},
		{
			name:        "local needs nothing",
			req:         models.ConnectionTest{Type: "local", Config: models.StorageSettings{"path": "/data"}},
			wantSuccess: true,
		},
		{
			name:        "unknown type",
			req:         models.ConnectionTest{Type: "tape"},
			wantSuccess: false,
			wantInMsg:   []string{"unsupported"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := svc.TestConnection(tc.req)

			assert.Equal(t, tc.wantSuccess, result.Success)
			for _, want := range tc.wantInMsg {
				assert.Contains(t, result.Message, want)
			}
		})
	}
}
