package domain

import "time"

type Trip struct {
	TripID      string     `json:"id" dynamodbav:"trip_id"`
	UserID      string     `json:"user_id" dynamodbav:"user_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Destination string     `json:"destination" dynamodbav:"destination"`
	Latitude    *float64   `json:"latitude,omitempty" dynamodbav:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty" dynamodbav:"longitude,omitempty"`
	StartDate   time.Time  `json:"start_date" dynamodbav:"start_date"`
	EndDate     time.Time  `json:"end_date" dynamodbav:"end_date"`
	// Free-form day-by-day plan, stored as a JSON document.
	Itinerary     map[string]interface{} `json:"itinerary,omitempty" dynamodbav:"itinerary"`
	CoverImageKey *string                `json:"cover_image_key,omitempty" dynamodbav:"cover_image_key,omitempty"`
	CreatedAt     time.Time              `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateTripRequest struct {
	Title       string                 `json:"title" validate:"required,max=200"`
	Destination string                 `json:"destination" validate:"required,max=200"`
	StartDate   string                 `json:"start_date" validate:"required"` // ISO 8601
	EndDate     string                 `json:"end_date" validate:"required"`   // ISO 8601
	Latitude    *float64               `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64               `json:"longitude" validate:"omitempty,longitude"`
	Itinerary   map[string]interface{} `json:"itinerary"`
}

type UpdateTripRequest struct {
	Title       *string                `json:"title" validate:"omitempty,max=200"`
	Destination *string                `json:"destination" validate:"omitempty,max=200"`
	StartDate   *string                `json:"start_date"`
	EndDate     *string                `json:"end_date"`
	Latitude    *float64               `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64               `json:"longitude" validate:"omitempty,longitude"`
	Itinerary   map[string]interface{} `json:"itinerary"`
}
