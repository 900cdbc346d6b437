package diff

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sheetwatch/internal/model"
)

func rec(hour int, name string) model.Record {
	return model.Record{
		Timestamp: time.Date(2024, 1, 1, hour, 0, 0, 0, time.Local),
		Fields:    map[string]any{"姓名": name},
	}
}

func TestNewRecords(t *testing.T) {
	a := rec(9, "张三")
	b := rec(10, "李四")
	c := rec(11, "王五")

	tests := []struct {
		name     string
		previous model.Snapshot
		current  model.Snapshot
		want     model.Snapshot
	}{
		{
			name:     "empty previous reports everything",
			previous: nil,
			current:  model.Snapshot{a, b},
			want:     model.Snapshot{a, b},
		},
		{
			name:     "identical snapshots report nothing",
			previous: model.Snapshot{a, b},
			current:  model.Snapshot{a, b},
			want:     nil,
		},
		{
			name:     "one addition",
			previous: model.Snapshot{a, b},
			current:  model.Snapshot{a, b, c},
			want:     model.Snapshot{c},
		},
		{
			name:     "removals are not reported",
			previous: model.Snapshot{a, b, c},
			current:  model.Snapshot{a},
			want:     nil,
		},
		{
			name:     "both empty",
			previous: nil,
			current:  nil,
			want:     nil,
		},
		{
			name:     "result preserves current order",
			previous: model.Snapshot{b},
			current:  model.Snapshot{c, b, a},
			want:     model.Snapshot{c, a},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRecords(tt.previous, tt.current, "姓名")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("new records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewRecordsDoesNotMutateInputs(t *testing.T) {
	previous := model.Snapshot{rec(9, "张三")}
	current := model.Snapshot{rec(9, "张三"), rec(10, "李四")}

	wantPrev := model.Snapshot{rec(9, "张三")}
	wantCur := model.Snapshot{rec(9, "张三"), rec(10, "李四")}

	NewRecords(previous, current, "姓名")

	if diff := cmp.Diff(wantPrev, previous); diff != "" {
		t.Errorf("previous mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantCur, current); diff != "" {
		t.Errorf("current mutated (-want +got):\n%s", diff)
	}
}

func TestNewRecordsKeyCollision(t *testing.T) {
	// Two rows with the same timestamp and name are indistinguishable, so
	// the second occurrence is not reported as new.
	prev := model.Snapshot{rec(9, "张三")}
	dup := rec(9, "张三")
	dup.Fields["处置"] = "复诊"

	got := NewRecords(prev, model.Snapshot{dup}, "姓名")
	if len(got) != 0 {
		t.Errorf("got %d new records, want 0 for colliding identity keys", len(got))
	}
}
