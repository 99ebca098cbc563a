package domain

import (
	"errors"
	"testing"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
)

func TestCheckTransition_AllowedEdges(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"payment confirmed to pending", model.TripStatusAwaitingPayment, model.TripStatusPending},
		{"payment confirmed straight to confirmed", model.TripStatusAwaitingPayment, model.TripStatusConfirmed},
		{"admin confirms pending", model.TripStatusPending, model.TripStatusConfirmed},
		{"dispatch assigns driver", model.TripStatusConfirmed, model.TripStatusDriverAssigned},
		{"driver starts trip", model.TripStatusDriverAssigned, model.TripStatusDriverEnRoute},
		{"driver rejects assignment", model.TripStatusDriverAssigned, model.TripStatusConfirmed},
		{"driver arrives at pickup", model.TripStatusDriverEnRoute, model.TripStatusInProgress},
		{"driver arrives at destination", model.TripStatusInProgress, model.TripStatusCompleted},
		{"cancel while awaiting payment", model.TripStatusAwaitingPayment, model.TripStatusCancelled},
		{"cancel while pending", model.TripStatusPending, model.TripStatusCancelled},
		{"cancel while confirmed", model.TripStatusConfirmed, model.TripStatusCancelled},
		{"cancel while driver assigned", model.TripStatusDriverAssigned, model.TripStatusCancelled},
		{"cancel while en route", model.TripStatusDriverEnRoute, model.TripStatusCancelled},
		{"cancel while in progress", model.TripStatusInProgress, model.TripStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckTransition(tt.from, tt.to); err != nil {
				t.Fatalf("CheckTransition(%s, %s) = %v, want nil", tt.from, tt.to, err)
			}
		})
	}
}

func TestCheckTransition_IllegalEdges(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"skip en route", model.TripStatusDriverAssigned, model.TripStatusInProgress},
		{"skip assignment", model.TripStatusConfirmed, model.TripStatusDriverEnRoute},
		{"pending cannot complete", model.TripStatusPending, model.TripStatusCompleted},
		{"backwards to pending", model.TripStatusConfirmed, model.TripStatusPending},
		{"en route cannot unassign", model.TripStatusDriverEnRoute, model.TripStatusConfirmed},
		{"unknown from status", "limbo", model.TripStatusConfirmed},
		{"unknown to status", model.TripStatusPending, "limbo"},
		{"self transition", model.TripStatusPending, model.TripStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			var illegal *IllegalTransitionError
			if !errors.As(err, &illegal) {
				t.Fatalf("CheckTransition(%s, %s) = %v, want IllegalTransitionError", tt.from, tt.to, err)
			}
			if illegal.From != tt.from || illegal.To != tt.to {
				t.Fatalf("error carries %s -> %s, want %s -> %s", illegal.From, illegal.To, tt.from, tt.to)
			}
		})
	}
}

func TestCheckTransition_TerminalImmutable(t *testing.T) {
	all := []string{
		model.TripStatusAwaitingPayment,
		model.TripStatusPending,
		model.TripStatusConfirmed,
		model.TripStatusDriverAssigned,
		model.TripStatusDriverEnRoute,
		model.TripStatusInProgress,
		model.TripStatusCompleted,
		model.TripStatusCancelled,
	}

	for _, terminal := range []string{model.TripStatusCompleted, model.TripStatusCancelled} {
		for _, to := range all {
			if err := CheckTransition(terminal, to); err == nil {
				t.Fatalf("CheckTransition(%s, %s) succeeded, terminal statuses must be immutable", terminal, to)
			}
		}
	}
}

func TestIsActive(t *testing.T) {
	active := []string{
		model.TripStatusAwaitingPayment,
		model.TripStatusPending,
		model.TripStatusConfirmed,
		model.TripStatusDriverAssigned,
		model.TripStatusDriverEnRoute,
		model.TripStatusInProgress,
	}
	for _, s := range active {
		if !IsActive(s) {
			t.Errorf("IsActive(%s) = false, want true", s)
		}
	}

	for _, s := range []string{model.TripStatusCompleted, model.TripStatusCancelled, "limbo"} {
		if IsActive(s) {
			t.Errorf("IsActive(%s) = true, want false", s)
		}
	}
}

func TestRequesterName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ari", "Sukma", "Ari Sukma"},
		{"Ari", "", "Ari"},
		{"", "Sukma", "Sukma"},
		{"", "", ""},
	}
	for _, tt := range tests {
		tr := TripRequest{FirstName: tt.first, LastName: tt.last}
		if got := tr.RequesterName(); got != tt.want {
			t.Errorf("RequesterName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
