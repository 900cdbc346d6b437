package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRecordKey(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name       string
		record     Record
		nameColumn string
		want       string
	}{
		{
			name:       "string name",
			record:     Record{Timestamp: ts, Fields: map[string]any{"姓名": "张三"}},
			nameColumn: "姓名",
			want:       "2024-01-01T09:00:00|张三",
		},
		{
			name:       "absent name falls back to empty",
			record:     Record{Timestamp: ts, Fields: map[string]any{}},
			nameColumn: "姓名",
			want:       "2024-01-01T09:00:00|",
		},
		{
			name:       "nil name falls back to empty",
			record:     Record{Timestamp: ts, Fields: map[string]any{"姓名": nil}},
			nameColumn: "姓名",
			want:       "2024-01-01T09:00:00|",
		},
		{
			name:       "numeric name stringified",
			record:     Record{Timestamp: ts, Fields: map[string]any{"id": float64(42)}},
			nameColumn: "id",
			want:       "2024-01-01T09:00:00|42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.record.Key(tt.nameColumn)); diff != "" {
				t.Errorf("key mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecordKeyCollision(t *testing.T) {
	// Same timestamp and name collide even when other fields differ.
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	a := Record{Timestamp: ts, Fields: map[string]any{"姓名": "张三", "处置": "检查"}}
	b := Record{Timestamp: ts, Fields: map[string]any{"姓名": "张三", "处置": "复诊"}}
	if a.Key("姓名") != b.Key("姓名") {
		t.Errorf("expected identical keys, got %q and %q", a.Key("姓名"), b.Key("姓名"))
	}
}
