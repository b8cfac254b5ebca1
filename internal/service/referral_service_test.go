package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/identity"
)

func newReferralService(repo *fakeUserRepo) *ReferralService {
	return NewReferralService(repo, nopCache(), nil, zap.NewNop())
}

func claim(name, email string) *identity.Claim {
	return &identity.Claim{Subject: "google-" + email, Name: name, Email: email, Picture: "p.jpg"}
}

func TestCreateUserAssignsValidCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newReferralService(repo)

	user, err := svc.CreateUser(context.Background(), claim("Ana", "ana@example.com"), "")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !domain.ValidInviteCode(user.MyCode) {
		t.Errorf("generated code %q does not match the code format", user.MyCode)
	}
	if user.InvitedBy != nil {
		t.Errorf("InvitedBy = %v, want nil without an invite code", *user.InvitedBy)
	}
	if user.VotedMovieID != nil {
		t.Error("new user must start without a vote")
	}
}

func TestCreateUserCodesAreUnique(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newReferralService(repo)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		user, err := svc.CreateUser(context.Background(), claim("U", string(rune('a'+i%26))+"@example.com"), "")
		if err != nil {
			t.Fatalf("CreateUser #%d: %v", i, err)
		}
		if seen[user.MyCode] {
			t.Fatalf("duplicate code generated: %s", user.MyCode)
		}
		seen[user.MyCode] = true
	}
}

func TestCreateUserCreditsInviterExactlyOnce(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newReferralService(repo)

	inviter, err := svc.CreateUser(context.Background(), claim("Ana", "ana@example.com"), "")
	if err != nil {
		t.Fatalf("CreateUser inviter: %v", err)
	}

	// Suffix only, lowercase: must canonicalize to the inviter's full code.
	suffix := inviter.MyCode[len(domain.InviteCodePrefix):]
	referred, err := svc.CreateUser(context.Background(), claim("Bob", "bob@example.com"), suffix)
	if err != nil {
		t.Fatalf("CreateUser referred: %v", err)
	}

	if referred.InvitedBy == nil || *referred.InvitedBy != inviter.MyCode {
		t.Errorf("InvitedBy = %v, want %s", referred.InvitedBy, inviter.MyCode)
	}
	stored, _ := repo.GetByID(context.Background(), inviter.ID)
	if stored.ReferralCount != 1 {
		t.Errorf("inviter ReferralCount = %d, want 1", stored.ReferralCount)
	}
}

func TestCreateUserUnknownCodeCreditsNobody(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newReferralService(repo)

	inviter, _ := svc.CreateUser(context.Background(), claim("Ana", "ana@example.com"), "")
	referred, err := svc.CreateUser(context.Background(), claim("Bob", "bob@example.com"), "NOPE1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if referred.InvitedBy != nil {
		t.Errorf("InvitedBy = %v, want nil for unknown code", *referred.InvitedBy)
	}
	stored, _ := repo.GetByID(context.Background(), inviter.ID)
	if stored.ReferralCount != 0 {
		t.Errorf("inviter ReferralCount = %d, want 0", stored.ReferralCount)
	}
}

func TestCreateUserCodeAllocationExhausted(t *testing.T) {
	repo := newFakeUserRepo()
	repo.crowded = true
	svc := newReferralService(repo)

	_, err := svc.CreateUser(context.Background(), claim("Ana", "ana@example.com"), "")
	if !errors.Is(err, domain.ErrCodeAllocationExhausted) {
		t.Errorf("err = %v, want ErrCodeAllocationExhausted", err)
	}
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newReferralService(repo)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		name    string
		count   int
		created time.Time
	}{
		{"zero", 0, base},
		{"late-three", 3, base.Add(2 * time.Hour)},
		{"early-three", 3, base.Add(time.Hour)},
		{"five", 5, base},
		{"one", 1, base},
		{"two", 2, base},
		{"four", 4, base},
	}
	for i, s := range seed {
		user := &domain.User{Name: s.name, Email: s.name + "@example.com", MyCode: domain.InviteCodePrefix + "SEED" + string(rune('A'+i))}
		if err := repo.CreateWithReferral(context.Background(), user, nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
		user.ReferralCount = s.count
		user.CreatedAt = s.created
	}

	top, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	want := []string{"five", "four", "early-three", "late-three", "two"}
	if len(top) != len(want) {
		t.Fatalf("leaderboard size = %d, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, top[i].Name, name)
		}
	}
}
