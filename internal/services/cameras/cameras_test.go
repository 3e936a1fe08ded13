package cameraservice

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
)

type fakeCameraStorage struct {
	saved      []models.Camera
	lastUpdate models.UpdateCamera
	updateID   string
	deleted    []string
	failWith   error
}

func (f *fakeCameraStorage) Cameras() ([]models.Camera, error) {
	return f.saved, nil
}

func (f *fakeCameraStorage) Save(cam models.Camera) (models.Camera, error) {
	if f.failWith != nil {
		return models.Camera{}, f.failWith
	}

	cam.AddedAt = time.Now()
	f.saved = append(f.saved, cam)

	return cam, nil
}

func (f *fakeCameraStorage) Update(id string, upd models.UpdateCamera) (models.Camera, error) {
	if f.failWith != nil {
		return models.Camera{}, f.failWith
	}

	f.updateID = id
	f.lastUpdate = upd

	return models.Camera{ID: id}, nil
}

func (f *fakeCameraStorage) Delete(id string) error {
	if f.failWith != nil {
		return f.failWith
	}

	f.deleted = append(f.deleted, id)

	return nil
}

type fakeGroupStorage struct {
	names map[string]int
}

func (f *fakeGroupStorage) Save(name string) error {
	if f.names == nil {
		f.names = make(map[string]int)
	}
	f.names[name]++

	return nil
}

func newService(cams *fakeCameraStorage, groups *fakeGroupStorage) *CameraService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, cams, groups)
}

func TestSaveCamera_AppliesDefaults(t *testing.T) {
	svc := newService(&fakeCameraStorage{}, &fakeGroupStorage{})

	cam, err := svc.SaveCamera(models.CreateCamera{
		Name:      "Front Door",
		IPAddress: "192.168.1.101",
		Port:      554,
	})
	require.NoError(t, err)

	assert.Equal(t, "rtsp://192.168.1.101:554/stream1", cam.StreamURL)
	assert.Equal(t, 10, cam.RecordingIntervalMin)
	assert.Equal(t, 3, cam.RetentionDays)
	assert.Equal(t, models.StatusOnline, cam.Status)
	assert.Nil(t, cam.GroupName)
	assert.NoError(t, uuid.Validate(cam.ID))
}

func TestSaveCamera_DefaultsPort(t *testing.T) {
	svc := newService(&fakeCameraStorage{}, &fakeGroupStorage{})

	cam, err := svc.SaveCamera(models.CreateCamera{
		Name:      "Garage",
		IPAddress: "10.0.0.7",
	})
	require.NoError(t, err)

	assert.Equal(t, 554, cam.Port)
	assert.Equal(t, "rtsp://10.0.0.7:554/stream1", cam.StreamURL)
}

func TestSaveCamera_KeepsExplicitStreamURL(t *testing.T) {
	svc := newService(&fakeCameraStorage{}, &fakeGroupStorage{})

	cam, err := svc.SaveCamera(models.CreateCamera{
		Name:      "Garage",
		IPAddress: "10.0.0.7",
		StreamURL: "rtsp://10.0.0.7:8554/main",
	})
	require.NoError(t, err)

	assert.Equal(t, "rtsp://10.0.0.7:8554/main", cam.StreamURL)
}

func TestSaveCamera_AutoCreatesGroup(t *testing.T) {
	groups := &fakeGroupStorage{}
	svc := newService(&fakeCameraStorage{}, groups)

	cam, err := svc.SaveCamera(models.CreateCamera{
		Name:      "Lab Cam",
		IPAddress: "10.0.0.8",
		GroupName: "Lab",
	})
	require.NoError(t, err)

	require.NotNil(t, cam.GroupName)
	assert.Equal(t, "Lab", *cam.GroupName)
	assert.Contains(t, groups.names, "Lab")
}

func TestUpdateCamera_NothingToUpdate(t *testing.T) {
	cams := &fakeCameraStorage{}
	svc := newService(cams, &fakeGroupStorage{})

	_, err := svc.UpdateCamera("cam-1", models.UpdateCamera{})

	assert.ErrorIs(t, err, errs.ErrNoFieldsToUpdate)
	assert.Empty(t, cams.updateID)
}

func TestUpdateCamera_PartialChangeSet(t *testing.T) {
	cams := &fakeCameraStorage{}
	svc := newService(cams, &fakeGroupStorage{})

	interval := 15
	_, err := svc.UpdateCamera("cam-1", models.UpdateCamera{
		RecordingIntervalMin: &interval,
	})
	require.NoError(t, err)

	assert.Equal(t, "cam-1", cams.updateID)
	require.NotNil(t, cams.lastUpdate.RecordingIntervalMin)
	assert.Equal(t, 15, *cams.lastUpdate.RecordingIntervalMin)
	assert.Nil(t, cams.lastUpdate.Name)
	assert.Nil(t, cams.lastUpdate.GroupName)
	assert.Nil(t, cams.lastUpdate.Status)
	assert.Nil(t, cams.lastUpdate.RetentionDays)
}

func TestUpdateCamera_AutoCreatesGroup(t *testing.T) {
	groups := &fakeGroupStorage{}
	svc := newService(&fakeCameraStorage{}, groups)

	name := "Perimeter"
	_, err := svc.UpdateCamera("cam-1", models.UpdateCamera{GroupName: &name})
	require.NoError(t, err)

	assert.Contains(t, groups.names, "Perimeter")
}

func TestUpdateCamera_ClearingGroupSkipsAutoCreate(t *testing.T) {
	groups := &fakeGroupStorage{}
	svc := newService(&fakeCameraStorage{}, groups)

	empty := ""
	_, err := svc.UpdateCamera("cam-1", models.UpdateCamera{GroupName: &empty})
	require.NoError(t, err)

	assert.Empty(t, groups.names)
}

func TestDeleteCamera_NotFound(t *testing.T) {
	cams := &fakeCameraStorage{failWith: errs.ErrCameraNotFound}
	svc := newService(cams, &fakeGroupStorage{})

	err := svc.DeleteCamera("missing")

	assert.ErrorIs(t, err, errs.ErrCameraNotFound)
}
