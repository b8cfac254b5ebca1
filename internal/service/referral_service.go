package service

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/cache"
	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/events"
	"github.com/spec-kit/movie-vote/internal/identity"
	"github.com/spec-kit/movie-vote/internal/repository"
)

const (
	codeGenerationAttempts = 10
	leaderboardSize        = 5
)

// ReferralService assigns invite codes, links new users to referrers and
// serves the referral leaderboard.
type ReferralService struct {
	users      repository.UserRepository
	readCache  *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReferralService builds the service.
func NewReferralService(users repository.UserRepository, readCache *cache.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *ReferralService {
	return &ReferralService{
		users:      users,
		readCache:  readCache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateUser registers a never-seen identity. The invite code, when given,
// is normalized and resolved to an inviter; the inviter credit and the new
// user row commit together in the repository transaction.
func (s *ReferralService) CreateUser(ctx context.Context, claim *identity.Claim, inviteCode string) (*domain.User, error) {
	var inviterCode *string
	if normalized := domain.NormalizeInviteCode(inviteCode); normalized != "" {
		exists, err := s.users.CodeExists(ctx, normalized)
		if err != nil {
			return nil, err
		}
		if exists {
			inviterCode = &normalized
		}
	}

	myCode, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     claim.Name,
		Email:    claim.Email,
		Photo:    claim.Picture,
		GoogleID: claim.Subject,
		MyCode:   myCode,
	}
	if err := s.users.CreateWithReferral(ctx, user, inviterCode); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Email:     user.Email,
			MyCode:    user.MyCode,
			InvitedBy: user.InvitedBy,
		},
	})
	if user.InvitedBy != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventReferralCredited,
			UserID:  user.ID,
			Payload: events.ReferralCreditedPayload{InviterCode: *user.InvitedBy},
		})
	}

	return user, nil
}

// Leaderboard returns the top recruiters, cached briefly in Redis.
func (s *ReferralService) Leaderboard(ctx context.Context) ([]domain.User, error) {
	var cached []domain.User
	if s.readCache.Get(ctx, cache.KeyLeaderboard, &cached) {
		return cached, nil
	}

	top, err := s.users.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}
	s.readCache.Set(ctx, cache.KeyLeaderboard, top)
	return top, nil
}

// generateUniqueCode draws random codes until one is free, bounded by a
// fixed attempt count. Exhaustion is an operational error; at ~60M
// combinations it signals something badly wrong with the store.
func (s *ReferralService) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}
		exists, err := s.users.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		s.logger.Warn("invite code collision", zap.Int("attempt", attempt+1))
	}
	return "", domain.ErrCodeAllocationExhausted
}

func randomInviteCode() (string, error) {
	buf := make([]byte, domain.InviteCodeSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = domain.InviteCodeAlphabet[int(b)%len(domain.InviteCodeAlphabet)]
	}
	return domain.InviteCodePrefix + string(suffix), nil
}

func (s *ReferralService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
