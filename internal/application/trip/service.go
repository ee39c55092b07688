package trip

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/planventure-api/internal/domain"
	"github.com/planventure-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle         = "title"
	fieldDestination   = "destination"
	fieldStartDate     = "start_date"
	fieldEndDate       = "end_date"
	fieldLatitude      = "latitude"
	fieldLongitude     = "longitude"
	fieldItinerary     = "itinerary"
	fieldCoverImageKey = "cover_image_key"
)

const coverURLTTL = 15 * time.Minute

// Service provides owner-scoped trip CRUD. Every operation that touches an
// existing trip checks that the acting user owns it; anything else is
// domain.ErrForbidden regardless of what is being asked.
type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateTripRequest) (*domain.Trip, error)
	Get(ctx context.Context, userID, tripID string) (*domain.Trip, error)
	ListOwn(ctx context.Context, userID string) ([]domain.Trip, error)
	Update(ctx context.Context, userID, tripID string, req domain.UpdateTripRequest) (*domain.Trip, error)
	Delete(ctx context.Context, userID, tripID string) error
	UploadCover(ctx context.Context, userID, tripID string, r io.Reader, contentType string) (*domain.Trip, error)
	CoverURL(ctx context.Context, userID, tripID string) (string, error)
	DeleteCover(ctx context.Context, userID, tripID string) error
}

type tripStore interface {
	Put(ctx context.Context, t *domain.Trip) error
	Get(ctx context.Context, tripID string) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Trip, error)
	Update(ctx context.Context, tripID string, updates map[string]interface{}) error
	Delete(ctx context.Context, tripID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo    tripStore
	objects objectStore
}

func NewService(repo tripStore, objects objectStore) Service {
	return &service{repo: repo, objects: objects}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateTripRequest) (*domain.Trip, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date must not be before start_date: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	t := &domain.Trip{
		TripID:      id.New(),
		UserID:      userID,
		Title:       req.Title,
		Destination: req.Destination,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StartDate:   start,
		EndDate:     end,
		Itinerary:   req.Itinerary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, userID, tripID string) (*domain.Trip, error) {
	return s.getOwned(ctx, userID, tripID)
}

func (s *service) ListOwn(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, tripID string, req domain.UpdateTripRequest) (*domain.Trip, error) {
	t, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Destination != nil {
		updates[fieldDestination] = *req.Destination
	}
	// The range check covers the effective dates, so changing one side cannot
	// invert the stored range.
	start, end := t.StartDate, t.EndDate
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		updates[fieldStartDate] = parsed
		start = parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		updates[fieldEndDate] = parsed
		end = parsed
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date must not be before start_date: %w", domain.ErrBadRequest)
	}
	if req.Latitude != nil {
		updates[fieldLatitude] = *req.Latitude
	}
	if req.Longitude != nil {
		updates[fieldLongitude] = *req.Longitude
	}
	if req.Itinerary != nil {
		updates[fieldItinerary] = req.Itinerary
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, tripID)
	}
	if err := s.repo.Update(ctx, tripID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tripID)
}

func (s *service) Delete(ctx context.Context, userID, tripID string) error {
	t, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return err
	}
	if t.CoverImageKey != nil {
		if err := s.objects.Delete(ctx, *t.CoverImageKey); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) UploadCover(ctx context.Context, userID, tripID string, r io.Reader, contentType string) (*domain.Trip, error) {
	t, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("trips/%s/cover", tripID)
	if _, err := s.objects.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, tripID, map[string]interface{}{fieldCoverImageKey: key}); err != nil {
		return nil, err
	}
	t.CoverImageKey = &key
	return t, nil
}

func (s *service) CoverURL(ctx context.Context, userID, tripID string) (string, error) {
	t, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return "", err
	}
	if t.CoverImageKey == nil {
		return "", fmt.Errorf("trip has no cover image: %w", domain.ErrNotFound)
	}
	return s.objects.PresignedURL(ctx, *t.CoverImageKey, coverURLTTL)
}

func (s *service) DeleteCover(ctx context.Context, userID, tripID string) error {
	t, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if t.CoverImageKey == nil {
		return fmt.Errorf("trip has no cover image: %w", domain.ErrNotFound)
	}
	if err := s.objects.Delete(ctx, *t.CoverImageKey); err != nil {
		return err
	}
	return s.repo.Update(ctx, tripID, map[string]interface{}{fieldCoverImageKey: nil})
}

func (s *service) getOwned(ctx context.Context, userID, tripID string) (*domain.Trip, error) {
	t, err := s.repo.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("trip belongs to another user: %w", domain.ErrForbidden)
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use ISO 8601: %w", s, domain.ErrBadRequest)
}
