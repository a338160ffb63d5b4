package homework

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"homework_bot/internal/model"
)

func TestCatalogLookup(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		want    string
		wantErr error
	}{
		{
			name:   "approved",
			status: model.StatusApproved,
			want:   "Работа проверена: ревьюеру всё понравилось. Ура!",
		},
		{
			name:   "reviewing",
			status: model.StatusReviewing,
			want:   "Работа взята на проверку ревьюером.",
		},
		{
			name:   "rejected",
			status: model.StatusRejected,
			want:   "Работа проверена: у ревьюера есть замечания.",
		},
		{
			name:    "unknown status",
			status:  "on_hold",
			wantErr: ErrUnknownStatus,
		},
		{
			name:    "empty status",
			status:  "",
			wantErr: ErrUnknownStatus,
		},
	}

	c := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogStatuses(t *testing.T) {
	c := NewCatalog()
	want := []model.Status{model.StatusApproved, model.StatusReviewing, model.StatusRejected}
	if diff := cmp.Diff(want, c.Statuses()); diff != "" {
		t.Errorf("Statuses() mismatch (-want +got):\n%s", diff)
	}

	// Callers cannot mutate the catalog through the returned slice.
	got := c.Statuses()
	got[0] = "mutated"
	if diff := cmp.Diff(want, c.Statuses()); diff != "" {
		t.Errorf("Statuses() changed after caller mutation (-want +got):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		hw      model.Homework
		want    string
		wantErr error
	}{
		{
			name: "reviewing",
			hw:   model.Homework{Name: "proj1", Status: model.StatusReviewing},
			want: `Изменился статус проверки работы "proj1". Работа взята на проверку ревьюером.`,
		},
		{
			name: "approved",
			hw:   model.Homework{Name: "proj1", Status: model.StatusApproved},
			want: `Изменился статус проверки работы "proj1". Работа проверена: ревьюеру всё понравилось. Ура!`,
		},
		{
			name: "rejected keeps name verbatim",
			hw:   model.Homework{Name: "user__hw_python_oop.zip", Status: model.StatusRejected},
			want: `Изменился статус проверки работы "user__hw_python_oop.zip". Работа проверена: у ревьюера есть замечания.`,
		},
		{
			name:    "unknown status",
			hw:      model.Homework{Name: "proj1", Status: "lost"},
			wantErr: ErrUnknownStatus,
		},
	}

	c := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Format(tt.hw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	got := FailureMessage(errors.New("boom"))
	if diff := cmp.Diff("Сбой в работе программы: boom", got); diff != "" {
		t.Errorf("FailureMessage() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    []model.Homework
		wantErr error
	}{
		{
			name: "single record",
			payload: map[string]any{
				"homeworks": []any{
					map[string]any{"homework_name": "proj1", "status": "reviewing"},
				},
				"current_date": float64(1700000000),
			},
			want: []model.Homework{{Name: "proj1", Status: model.StatusReviewing}},
		},
		{
			name: "optional fields kept, order preserved",
			payload: map[string]any{
				"homeworks": []any{
					map[string]any{
						"homework_name":    "proj2",
						"status":           "rejected",
						"reviewer_comment": "fix tests",
						"date_updated":     "2024-01-02T10:00:00Z",
					},
					map[string]any{"homework_name": "proj1", "status": "approved"},
				},
			},
			want: []model.Homework{
				{Name: "proj2", Status: model.StatusRejected, ReviewerComment: "fix tests", DateUpdated: "2024-01-02T10:00:00Z"},
				{Name: "proj1", Status: model.StatusApproved},
			},
		},
		{
			name:    "empty list",
			payload: map[string]any{"homeworks": []any{}},
			want:    []model.Homework{},
		},
		{
			name: "unknown status is decoded, not rejected here",
			payload: map[string]any{
				"homeworks": []any{map[string]any{"homework_name": "p", "status": "weird"}},
			},
			want: []model.Homework{{Name: "p", Status: "weird"}},
		},
		{
			name:    "top level list",
			payload: []any{map[string]any{"homeworks": []any{}}},
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "top level string",
			payload: "homeworks",
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "nil payload",
			payload: nil,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "missing homeworks",
			payload: map[string]any{},
			wantErr: ErrMissingField,
		},
		{
			name:    "homeworks is string",
			payload: map[string]any{"homeworks": "proj1"},
			wantErr: ErrWrongType,
		},
		{
			name:    "homeworks is number",
			payload: map[string]any{"homeworks": float64(3)},
			wantErr: ErrWrongType,
		},
		{
			name:    "homeworks is object",
			payload: map[string]any{"homeworks": map[string]any{}},
			wantErr: ErrWrongType,
		},
		{
			name: "later record without name is kept loosely",
			payload: map[string]any{
				"homeworks": []any{
					map[string]any{"homework_name": "proj1", "status": "approved"},
					map[string]any{"status": "approved"},
				},
			},
			want: []model.Homework{
				{Name: "proj1", Status: model.StatusApproved},
				{Status: model.StatusApproved},
			},
		},
		{
			name: "later non-object record is dropped",
			payload: map[string]any{
				"homeworks": []any{
					map[string]any{"homework_name": "proj1", "status": "reviewing"},
					"garbage",
					map[string]any{"homework_name": "proj0", "status": float64(7)},
				},
			},
			want: []model.Homework{
				{Name: "proj1", Status: model.StatusReviewing},
				{Name: "proj0"},
			},
		},
		{
			name:    "record is not an object",
			payload: map[string]any{"homeworks": []any{"proj1"}},
			wantErr: ErrWrongType,
		},
		{
			name: "record without name",
			payload: map[string]any{
				"homeworks": []any{map[string]any{"status": "approved"}},
			},
			wantErr: ErrMissingField,
		},
		{
			name: "record without status",
			payload: map[string]any{
				"homeworks": []any{map[string]any{"homework_name": "proj1"}},
			},
			wantErr: ErrMissingField,
		},
		{
			name: "status is not a string",
			payload: map[string]any{
				"homeworks": []any{map[string]any{"homework_name": "proj1", "status": float64(1)}},
			},
			wantErr: ErrWrongType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.payload)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if got != nil {
					t.Errorf("expected no records on error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
