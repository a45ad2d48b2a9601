package frame

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortByNumber(t *testing.T) {
	frames := []Info{
		{Number: 3, Sharpness: 98},
		{Number: 1, Sharpness: 152},
		{Number: 2, Sharpness: 311},
	}
	SortByNumber(frames)

	want := []Info{
		{Number: 1, Sharpness: 152},
		{Number: 2, Sharpness: 311},
		{Number: 3, Sharpness: 98},
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Errorf("SortByNumber mismatch (-want +got):\n%s", diff)
	}
	if !IsSorted(frames) {
		t.Error("IsSorted = false after SortByNumber")
	}
}

func TestSortByNumber_DuplicatesKeepInputOrder(t *testing.T) {
	frames := []Info{
		{Number: 7, Path: "b/frame00007.png"},
		{Number: 1, Path: "frame00001.png"},
		{Number: 7, Path: "a/frame00007.png"},
		{Number: 7, Path: "c/frame00007.png"},
	}
	SortByNumber(frames)

	got := make([]string, len(frames))
	for i, f := range frames {
		got[i] = f.Path
	}
	want := []string{"frame00001.png", "b/frame00007.png", "a/frame00007.png", "c/frame00007.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("duplicate order mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name   string
		frames []Info
		want   bool
	}{
		{"empty", nil, true},
		{"single", []Info{{Number: 4}}, true},
		{"ascending with tie", []Info{{Number: 1}, {Number: 2}, {Number: 2}}, true},
		{"descending", []Info{{Number: 2}, {Number: 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSorted(tt.frames); got != tt.want {
				t.Errorf("IsSorted = %v, want %v", got, tt.want)
			}
		})
	}
}
