package http

import (
	"github.com/planventure-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/planventure-api/internal/infrastructure/jwt"
	s3infra "github.com/planventure-api/internal/infrastructure/s3"
	"github.com/planventure-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	TripRepo    *dynamo.TripRepo
	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
