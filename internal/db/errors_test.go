package db

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/allan6757/Hospitali/internal/apperr"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		wantValidation  bool
		wantIntegrity   bool
		wantUnavailable bool
	}{
		{
			name:           "numeric value out of range",
			err:            &pq.Error{Code: "22003", Message: "integer out of range"},
			wantValidation: true,
		},
		{
			name:          "foreign key violation",
			err:           &pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint"},
			wantIntegrity: true,
		},
		{
			name:          "check violation",
			err:           &pq.Error{Code: "23514"},
			wantIntegrity: true,
		},
		{
			name:            "connection failure",
			err:             &pq.Error{Code: "08006"},
			wantUnavailable: true,
		},
		{
			name:            "admin shutdown",
			err:             &pq.Error{Code: "57P01"},
			wantUnavailable: true,
		},
		{
			name:            "bad connection",
			err:             fmt.Errorf("exec: %w", driver.ErrBadConn),
			wantUnavailable: true,
		},
		{
			name: "syntax error",
			err:  &pq.Error{Code: "42601"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify("op", tc.err)

			if got == nil {
				t.Fatal("Expected non-nil error")
			}
			if apperr.IsValidation(got) != tc.wantValidation {
				t.Errorf("IsValidation = %v, want %v (%v)", apperr.IsValidation(got), tc.wantValidation, got)
			}
			if apperr.IsIntegrity(got) != tc.wantIntegrity {
				t.Errorf("IsIntegrity = %v, want %v (%v)", apperr.IsIntegrity(got), tc.wantIntegrity, got)
			}
			if apperr.IsUnavailable(got) != tc.wantUnavailable {
				t.Errorf("IsUnavailable = %v, want %v (%v)", apperr.IsUnavailable(got), tc.wantUnavailable, got)
			}
			if !errors.Is(got, tc.err) {
				t.Error("Expected original error to stay reachable")
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if err := Classify("op", nil); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}
