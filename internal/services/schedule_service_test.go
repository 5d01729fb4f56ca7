package services

import (
	"errors"
	"testing"

	"fitnesshub_backend/internal/models"
)

func TestValidateClassTimes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid morning slot", "07:30", "08:30", false},
		{"valid last slot", "18:30", "19:00", false},
		{"bad start format", "7h30", "08:30", true},
		{"bad end format", "07:30", "morning", true},
		{"end equals start", "09:00", "09:00", true},
		{"end before start", "10:00", "09:00", true},
		{"before opening", "07:00", "08:00", true},
		{"past closing", "18:30", "19:30", true},
		{"off-grid start", "09:15", "10:15", true},
		{"off-grid end", "09:00", "09:45", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateClassTimes(tc.start, tc.end)
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("ValidateClassTimes(%q, %q) = %v, want ErrValidation", tc.start, tc.end, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidateClassTimes(%q, %q) = %v, want nil", tc.start, tc.end, err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "11:00", "09:30", "10:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"back to back", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateClass(t *testing.T) {
	req := CreateClassRequest{
		ClassName:      "Morning Yoga",
		InstructorName: "Liza Tan",
		DayOfWeek:      1,
		StartTime:      "08:00",
		EndTime:        "09:00",
	}

	t.Run("rejects missing name", func(t *testing.T) {
		svc := NewScheduleService(&fakeScheduleRepo{}, nil)
		bad := req
		bad.ClassName = "  "
		if _, err := svc.CreateClass(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects bad day", func(t *testing.T) {
		svc := NewScheduleService(&fakeScheduleRepo{}, nil)
		bad := req
		bad.DayOfWeek = 8
		if _, err := svc.CreateClass(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects overlap", func(t *testing.T) {
		svc := NewScheduleService(&fakeScheduleRepo{overlap: true}, nil)
		if _, err := svc.CreateClass(req); !errors.Is(err, ErrScheduleConflict) {
			t.Errorf("expected ErrScheduleConflict, got %v", err)
		}
	})

	t.Run("creates and decorates", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewScheduleService(repo, nil)
		class, err := svc.CreateClass(req)
		if err != nil {
			t.Fatalf("CreateClass failed: %v", err)
		}
		if len(repo.classes) != 1 {
			t.Fatalf("expected 1 stored class, got %d", len(repo.classes))
		}
		if class.DayLabel != "Monday" {
			t.Errorf("day label = %q, want Monday", class.DayLabel)
		}
		if class.StartLabel != "8:00 AM" || class.EndLabel != "9:00 AM" {
			t.Errorf("time labels = %q, %q", class.StartLabel, class.EndLabel)
		}
	})
}

func TestGetClasses_Decorates(t *testing.T) {
	repo := &fakeScheduleRepo{classes: []models.ClassSchedule{
		{ID: 1, ClassName: "Spin", DayOfWeek: 6, StartTime: "14:30", EndTime: "15:30"},
	}}
	svc := NewScheduleService(repo, nil)

	classes, err := svc.GetClasses()
	if err != nil {
		t.Fatalf("GetClasses failed: %v", err)
	}
	if classes[0].DayLabel != "Saturday" {
		t.Errorf("day label = %q, want Saturday", classes[0].DayLabel)
	}
	if classes[0].StartLabel != "2:30 PM" {
		t.Errorf("start label = %q, want 2:30 PM", classes[0].StartLabel)
	}
}

func TestDeleteClass_NotFound(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{}, nil)
	if err := svc.DeleteClass(99); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
