package timeparse

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	native := time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		cell    any
		want    time.Time
		wantErr bool
	}{
		{
			name: "datetime string",
			cell: "2024-01-01 09:00:00",
			want: time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local),
		},
		{
			name: "date only string normalizes to midnight",
			cell: "2024-01-01",
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name: "slash separated",
			cell: "2024/01/01 09:00:00",
			want: time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local),
		},
		{
			name: "us locale",
			cell: "01/31/2024 18:15:00",
			want: time.Date(2024, 1, 31, 18, 15, 0, 0, time.Local),
		},
		{
			name: "short excel format",
			cell: "1/2/24 09:00",
			want: time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local),
		},
		{
			name: "surrounding whitespace",
			cell: "  2024-01-01  ",
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name: "native time passes through",
			cell: native,
			want: native,
		},
		{
			name:    "garbage string",
			cell:    "next tuesday",
			wantErr: true,
		},
		{
			name:    "unknown type",
			cell:    struct{}{},
			wantErr: true,
		},
		{
			name:    "nil cell",
			cell:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.cell)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%v) = %v, want error", tt.cell, got)
				}
				var ue *UnparseableError
				if !errors.As(err, &ue) {
					t.Fatalf("error %v is not *UnparseableError", err)
				}
				if diff := cmp.Diff(tt.cell, ue.Raw); diff != "" {
					t.Errorf("raw value mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%v): %v", tt.cell, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestNormalizePriorityOrder(t *testing.T) {
	// The full datetime layout must win over the date-only layout for a
	// value both could start to match.
	got, err := Normalize("2024-06-15 23:59:59")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := time.Date(2024, 6, 15, 23, 59, 59, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
