package services

import (
	"errors"
	"strings"
	"testing"

	"fitnesshub_backend/internal/models"
)

func TestNotifyStaffOfRegistration_FansOutToEveryStaff(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	staffRepo := &fakeStaffRepo{staffIDs: []int64{1, 2, 3}}
	svc := NewNotificationService(notificationRepo, staffRepo, nil)

	if err := svc.NotifyStaffOfRegistration(nil, "Ana Reyes", 7, RegistrationNew); err != nil {
		t.Fatalf("NotifyStaffOfRegistration failed: %v", err)
	}
	if len(notificationRepo.created) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notificationRepo.created))
	}
	for i, n := range notificationRepo.created {
		if n.RecipientID != staffRepo.staffIDs[i] {
			t.Errorf("notification %d recipient = %d, want %d", i, n.RecipientID, staffRepo.staffIDs[i])
		}
		if !strings.Contains(n.Message, "New member registration: Ana Reyes") {
			t.Errorf("unexpected message: %q", n.Message)
		}
		if n.RedirectTarget == nil || *n.RedirectTarget != "/staff/dashboard#pending" {
			t.Errorf("unexpected redirect target: %v", n.RedirectTarget)
		}
		if n.RelatedMemberID == nil || *n.RelatedMemberID != 7 {
			t.Errorf("unexpected related member: %v", n.RelatedMemberID)
		}
	}
}

func TestNotifyStaffOfRegistration_ReapplicationWording(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	svc := NewNotificationService(notificationRepo, &fakeStaffRepo{staffIDs: []int64{1}}, nil)

	if err := svc.NotifyStaffOfRegistration(nil, "Ana Reyes", 7, RegistrationReapplication); err != nil {
		t.Fatalf("NotifyStaffOfRegistration failed: %v", err)
	}
	if got := notificationRepo.created[0].Message; !strings.HasPrefix(got, "Re-application received: Ana Reyes") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestNotifyStaffOfAccountRequest(t *testing.T) {
	tests := []struct {
		requestType string
		wantPhrase  string
	}{
		{models.RequestTypeFreeze, "requested to freeze"},
		{models.RequestTypeUnfreeze, "requested to unfreeze"},
	}
	for _, tc := range tests {
		t.Run(tc.requestType, func(t *testing.T) {
			notificationRepo := &fakeNotificationRepo{}
			svc := NewNotificationService(notificationRepo, &fakeStaffRepo{staffIDs: []int64{1}}, nil)

			if err := svc.NotifyStaffOfAccountRequest(nil, "Ana Reyes", 7, tc.requestType); err != nil {
				t.Fatalf("NotifyStaffOfAccountRequest failed: %v", err)
			}
			n := notificationRepo.created[0]
			if !strings.Contains(n.Message, tc.wantPhrase) {
				t.Errorf("message %q missing %q", n.Message, tc.wantPhrase)
			}
			if n.RedirectTarget == nil || *n.RedirectTarget != "/staff/dashboard#requests" {
				t.Errorf("unexpected redirect target: %v", n.RedirectTarget)
			}
		})
	}
}

func TestNotifyStaffOfAccountRequest_RejectsUnknownType(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, &fakeStaffRepo{staffIDs: []int64{1}}, nil)

	if err := svc.NotifyStaffOfAccountRequest(nil, "Ana Reyes", 7, "PAUSE"); err == nil {
		t.Fatal("expected an error for an unknown request type")
	}
}

func TestCountUnreadForStaff(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{created: []models.Notification{
		{ID: 1, RecipientID: 1, IsRead: true},
		{ID: 2, RecipientID: 1},
		{ID: 3, RecipientID: 1},
		{ID: 4, RecipientID: 2},
	}}
	svc := NewNotificationService(notificationRepo, &fakeStaffRepo{}, nil)

	count, err := svc.CountUnreadForStaff(1)
	if err != nil {
		t.Fatalf("CountUnreadForStaff failed: %v", err)
	}
	if count != 2 {
		t.Errorf("unread count = %d, want 2", count)
	}
}

func TestMarkRead(t *testing.T) {
	target := "/staff/dashboard#pending"
	notificationRepo := &fakeNotificationRepo{targets: map[int64]*string{5: &target}}
	svc := NewNotificationService(notificationRepo, &fakeStaffRepo{}, nil)

	got, err := svc.MarkRead(5, 1)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if got == nil || *got != target {
		t.Errorf("redirect target = %v, want %q", got, target)
	}

	if _, err := svc.MarkRead(99, 1); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
}
