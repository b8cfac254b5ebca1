package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestGetBootstrapsMissingWindowOnce(t *testing.T) {
	repo := &fakeConfigRepo{}
	deadline := time.Date(2026, 5, 21, 19, 0, 0, 0, time.UTC)
	svc := NewWindowService(repo, deadline, nil, zap.NewNop())

	window, _, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !window.EndTime.Equal(deadline) {
		t.Errorf("EndTime = %v, want default %v", window.EndTime, deadline)
	}
	if repo.ensureCalls != 1 {
		t.Errorf("ensureCalls = %d, want 1", repo.ensureCalls)
	}

	if _, _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if repo.ensureCalls != 1 {
		t.Errorf("ensureCalls after second read = %d, want 1 (reads must not write)", repo.ensureCalls)
	}
}

func TestReadNeverClobbersAdminDeadline(t *testing.T) {
	repo := &fakeConfigRepo{}
	defaultDeadline := time.Date(2026, 5, 21, 19, 0, 0, 0, time.UTC)
	adminDeadline := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWindowService(repo, defaultDeadline, nil, zap.NewNop())

	if _, err := svc.Set(context.Background(), adminDeadline); err != nil {
		t.Fatalf("Set: %v", err)
	}

	for i := 0; i < 3; i++ {
		window, _, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !window.EndTime.Equal(adminDeadline) {
			t.Fatalf("EndTime = %v, want admin-set %v", window.EndTime, adminDeadline)
		}
	}
	if repo.setCalls != 1 {
		t.Errorf("setCalls = %d, want 1", repo.setCalls)
	}
	if repo.ensureCalls != 0 {
		t.Errorf("ensureCalls = %d, want 0 when a window exists", repo.ensureCalls)
	}
}

func TestVotingOpenBoundary(t *testing.T) {
	repo := &fakeConfigRepo{}
	deadline := time.Date(2026, 5, 21, 19, 0, 0, 0, time.UTC)
	svc := NewWindowService(repo, deadline, nil, zap.NewNop())

	cases := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"before deadline", deadline.Add(-time.Second), true},
		{"exact deadline", deadline, false},
		{"after deadline", deadline.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc.now = func() time.Time { return tc.now }
			_, open, err := svc.Get(context.Background())
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if open != tc.open {
				t.Errorf("open = %v, want %v", open, tc.open)
			}
		})
	}
}
