package services

import (
	"errors"
	"testing"
	"time"

	"fitnesshub_backend/internal/models"
)

func TestVisitDurationMinutes(t *testing.T) {
	base := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{"whole hour", base.Add(60 * time.Minute), 60},
		{"partial minute floors", base.Add(45*time.Minute + 30*time.Second), 45},
		{"zero duration", base, 0},
		{"clock skew never negative", base.Add(-10 * time.Minute), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisitDurationMinutes(base, tc.out); got != tc.want {
				t.Errorf("VisitDurationMinutes = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCheckInOut_RejectsUnknownAction(t *testing.T) {
	svc := NewCheckinService(&fakeCheckinRepo{}, newFakeMemberRepo(), newFakeTrackerRepo(), nil)

	_, err := svc.CheckInOut(CheckInOutRequest{MemberID: 1, Action: "pause"})
	if !errors.Is(err, ErrInvalidCheckAction) {
		t.Fatalf("expected ErrInvalidCheckAction, got %v", err)
	}
}

func TestCheckInOut_RejectsUnknownMember(t *testing.T) {
	svc := NewCheckinService(&fakeCheckinRepo{}, newFakeMemberRepo(), newFakeTrackerRepo(), nil)

	_, err := svc.CheckInOut(CheckInOutRequest{MemberID: 99, Action: ActionCheckIn})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestGetHistory_DecoratesClosedVisits(t *testing.T) {
	in := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)
	out := in.Add(75 * time.Minute)
	profile := &models.MemberProfile{ID: 1, UserID: 10}
	checkinRepo := &fakeCheckinRepo{history: []models.CheckIn{
		{ID: 2, MemberID: 1, CheckInTime: in.Add(24 * time.Hour)},
		{ID: 1, MemberID: 1, CheckInTime: in, CheckOutTime: &out},
	}}
	svc := NewCheckinService(checkinRepo, newFakeMemberRepo(profile), newFakeTrackerRepo(), nil)

	history, err := svc.GetHistory(10)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(history))
	}
	if history[0].DurationMinutes != nil {
		t.Error("open visit should have no duration")
	}
	if history[1].DurationMinutes == nil || *history[1].DurationMinutes != 75 {
		t.Errorf("closed visit duration = %v, want 75", history[1].DurationMinutes)
	}
}
