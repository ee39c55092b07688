package trip

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/planventure-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockTripStore struct{ mock.Mock }

func (m *mockTripStore) Put(ctx context.Context, t *domain.Trip) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTripStore) Get(ctx context.Context, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tripID)
	if tr, _ := args.Get(0).(*domain.Trip); tr != nil {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTripStore) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	args := m.Called(ctx, userID)
	if trips, _ := args.Get(0).([]domain.Trip); trips != nil {
		return trips, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTripStore) Update(ctx context.Context, tripID string, updates map[string]interface{}) error {
	return m.Called(ctx, tripID, updates).Error(0)
}
func (m *mockTripStore) Delete(ctx context.Context, tripID string) error {
	return m.Called(ctx, tripID).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// --- helpers ---

func ownedTrip() *domain.Trip {
	return &domain.Trip{
		TripID:      "t1",
		UserID:      "u1",
		Title:       "Summer trip",
		Destination: "Lisbon",
	}
}

func createReq() domain.CreateTripRequest {
	return domain.CreateTripRequest{
		Title:       "Summer trip",
		Destination: "Lisbon",
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-14",
	}
}

// --- Create tests ---

func TestCreate_Success(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ts, nil)
	tr, err := svc.Create(context.Background(), "u1", createReq())

	require.NoError(t, err)
	assert.NotEmpty(t, tr.TripID)
	assert.Equal(t, "u1", tr.UserID)
	assert.Equal(t, "Lisbon", tr.Destination)
	assert.True(t, tr.EndDate.After(tr.StartDate))
	ts.AssertExpectations(t)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	req := createReq()
	req.StartDate = "2026-07-14"
	req.EndDate = "2026-07-01"

	svc := NewService(&mockTripStore{}, nil)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_BadDateFormat(t *testing.T) {
	req := createReq()
	req.StartDate = "July 1st 2026"

	svc := NewService(&mockTripStore{}, nil)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_AcceptsRFC3339(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Put", mock.Anything, mock.Anything).Return(nil)

	req := createReq()
	req.StartDate = "2026-07-01T10:00:00Z"
	req.EndDate = "2026-07-14T18:30:00Z"

	svc := NewService(ts, nil)
	tr, err := svc.Create(context.Background(), "u1", req)

	require.NoError(t, err)
	assert.Equal(t, 10, tr.StartDate.Hour())
}

// --- ownership tests ---

func TestGet_Owner(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	svc := NewService(ts, nil)
	tr, err := svc.Get(context.Background(), "u1", "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", tr.TripID)
}

func TestGet_OtherUserForbidden(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	svc := NewService(ts, nil)
	_, err := svc.Get(context.Background(), "u2", "t1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestGet_NotFound(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(ts, nil)
	_, err := svc.Get(context.Background(), "u1", "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_OtherUserForbidden(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	title := "Hijacked"
	svc := NewService(ts, nil)
	_, err := svc.Update(context.Background(), "u2", "t1", domain.UpdateTripRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PartialFields(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)
	ts.On("Update", mock.Anything, "t1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasTitle := m["title"]
		_, hasDestination := m["destination"]
		return hasTitle && !hasDestination
	})).Return(nil)

	title := "Autumn trip"
	svc := NewService(ts, nil)
	_, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTripRequest{Title: &title})

	require.NoError(t, err)
	ts.AssertExpectations(t)
}

func datedTrip() *domain.Trip {
	tr := ownedTrip()
	tr.StartDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	tr.EndDate = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	return tr
}

func TestUpdate_EndBeforeExistingStart(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(datedTrip(), nil)

	end := "2026-06-01"
	svc := NewService(ts, nil)
	_, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTripRequest{EndDate: &end})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_StartAfterExistingEnd(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(datedTrip(), nil)

	start := "2026-08-01"
	svc := NewService(ts, nil)
	_, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTripRequest{StartDate: &start})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_BothDatesValidRange(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(datedTrip(), nil)
	ts.On("Update", mock.Anything, "t1", mock.Anything).Return(nil)

	start, end := "2026-09-01", "2026-09-10"
	svc := NewService(ts, nil)
	_, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTripRequest{StartDate: &start, EndDate: &end})

	require.NoError(t, err)
	ts.AssertExpectations(t)
}

func TestUpdate_NoFields_NoWrite(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	svc := NewService(ts, nil)
	tr, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTripRequest{})

	require.NoError(t, err)
	assert.Equal(t, "t1", tr.TripID)
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_OtherUserForbidden(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	svc := NewService(ts, nil)
	err := svc.Delete(context.Background(), "u2", "t1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	ts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_RemovesCoverObject(t *testing.T) {
	key := "trips/t1/cover"
	tr := ownedTrip()
	tr.CoverImageKey = &key

	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(tr, nil)
	ts.On("Delete", mock.Anything, "t1").Return(nil)

	os := &mockObjectStore{}
	os.On("Delete", mock.Anything, key).Return(nil)

	svc := NewService(ts, os)
	err := svc.Delete(context.Background(), "u1", "t1")

	require.NoError(t, err)
	os.AssertExpectations(t)
}

func TestListOwn(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("ListByUser", mock.Anything, "u1").Return([]domain.Trip{*ownedTrip()}, nil)

	svc := NewService(ts, nil)
	trips, err := svc.ListOwn(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "t1", trips[0].TripID)
}

// --- cover image tests ---

func TestUploadCover_Success(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)
	ts.On("Update", mock.Anything, "t1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m["cover_image_key"] == "trips/t1/cover"
	})).Return(nil)

	os := &mockObjectStore{}
	os.On("Upload", mock.Anything, "trips/t1/cover", mock.Anything, "image/png").Return("trips/t1/cover", nil)

	svc := NewService(ts, os)
	tr, err := svc.UploadCover(context.Background(), "u1", "t1", strings.NewReader("png-bytes"), "image/png")

	require.NoError(t, err)
	require.NotNil(t, tr.CoverImageKey)
	assert.Equal(t, "trips/t1/cover", *tr.CoverImageKey)
	ts.AssertExpectations(t)
}

func TestCoverURL_NoCover(t *testing.T) {
	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(ownedTrip(), nil)

	svc := NewService(ts, &mockObjectStore{})
	_, err := svc.CoverURL(context.Background(), "u1", "t1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCoverURL_Presigned(t *testing.T) {
	key := "trips/t1/cover"
	tr := ownedTrip()
	tr.CoverImageKey = &key

	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(tr, nil)

	os := &mockObjectStore{}
	os.On("PresignedURL", mock.Anything, key, coverURLTTL).Return("https://s3/signed", nil)

	svc := NewService(ts, os)
	url, err := svc.CoverURL(context.Background(), "u1", "t1")

	require.NoError(t, err)
	assert.Equal(t, "https://s3/signed", url)
}

func TestDeleteCover_ClearsKey(t *testing.T) {
	key := "trips/t1/cover"
	tr := ownedTrip()
	tr.CoverImageKey = &key

	ts := &mockTripStore{}
	ts.On("Get", mock.Anything, "t1").Return(tr, nil)
	ts.On("Update", mock.Anything, "t1", mock.MatchedBy(func(m map[string]interface{}) bool {
		v, ok := m["cover_image_key"]
		return ok && v == nil
	})).Return(nil)

	os := &mockObjectStore{}
	os.On("Delete", mock.Anything, key).Return(nil)

	svc := NewService(ts, os)
	err := svc.DeleteCover(context.Background(), "u1", "t1")

	require.NoError(t, err)
	ts.AssertExpectations(t)
	os.AssertExpectations(t)
}
