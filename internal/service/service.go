// Package service holds the account security and verification engine: the login
// guard chain and lockout policy, the authorization gate, account self-service and
// administration, and the KYC workflow. Every mutation of an account runs through
// repository.AccountRepository.Update so concurrent requests on one account serialize.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
	"github.com/cradoe/banking-api/internal/security"
)

type Config struct {
	// PanSurnameCheck requires the fifth PAN character to match the surname initial.
	PanSurnameCheck bool
}

// BlobStore keeps uploaded KYC documents.
type BlobStore interface {
	// Put writes the whole of r under key and returns a durable reference.
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event *models.AccountEvent) error
}

// BackgroundRunner runs work that must not hold up the response, such as audit writes.
type BackgroundRunner interface {
	BackgroundTask(fn func() error)
}

type Dependencies struct {
	Accounts    repository.AccountRepository
	Activity    repository.ActivityRepository
	Passwords   *security.PasswordHasher
	Tokens      *security.TokenIssuer
	Identifiers *security.IdentifierHasher
	Blobs       BlobStore
	Events      EventPublisher
	Background  BackgroundRunner
	Logger      *slog.Logger
	Config      Config
}

type Service struct {
	accounts    repository.AccountRepository
	activity    repository.ActivityRepository
	passwords   *security.PasswordHasher
	tokens      *security.TokenIssuer
	identifiers *security.IdentifierHasher
	blobs       BlobStore
	events      EventPublisher
	background  BackgroundRunner
	logger      *slog.Logger
	cfg         Config
	now         func() time.Time
}

func New(deps Dependencies) *Service {
	return &Service{
		accounts:    deps.Accounts,
		activity:    deps.Activity,
		passwords:   deps.Passwords,
		tokens:      deps.Tokens,
		identifiers: deps.Identifiers,
		blobs:       deps.Blobs,
		events:      deps.Events,
		background:  deps.Background,
		logger:      deps.Logger,
		cfg:         deps.Config,
		now:         time.Now,
	}
}

// audit writes an activity log entry without failing the caller.
func (s *Service) audit(accountID, actorID int64, description string) {
	entry := &models.ActivityLog{AccountID: accountID, Description: description}
	if actorID != 0 {
		entry.ActorID.Int64 = actorID
		entry.ActorID.Valid = true
	}

	s.background.BackgroundTask(func() error {
		return s.activity.Insert(context.Background(), entry)
	})
}

func (s *Service) publish(eventType string, account *models.Account) {
	event := &models.AccountEvent{
		Type:       eventType,
		AccountID:  account.ID,
		Email:      account.Email,
		Name:       account.FullName(),
		KYCStatus:  account.KYCStatus,
		OccurredAt: s.now(),
	}

	s.background.BackgroundTask(func() error {
		return s.events.Publish(context.Background(), event)
	})
}
