package restoration

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-drift/kit/pkg/animation"
	"github.com/go-drift/kit/pkg/wheel"
)

func TestStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "pickers.yaml")

	s := NewStore()
	s.Put("month", wheel.Snapshot{Infinite: true, RawIndex: wheel.InfiniteOffset + 4})
	s.Put("year", wheel.Snapshot{RawIndex: 26})
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.IDs(); !slices.Equal(got, []string{"month", "year"}) {
		t.Errorf("IDs() = %v", got)
	}
	month, ok := loaded.Get("month")
	if !ok || month != (wheel.Snapshot{Infinite: true, RawIndex: wheel.InfiniteOffset + 4}) {
		t.Errorf("month = %+v, %v", month, ok)
	}
	if got := loaded.Restore("year"); got == nil || *got != (wheel.Snapshot{RawIndex: 26}) {
		t.Errorf("Restore(year) = %+v", got)
	}
	if got := loaded.Restore("day"); got != nil {
		t.Errorf("Restore(day) = %+v, want nil", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestDecode_Versions(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		incompatible bool
	}{
		{"current", "version: v1.0.0\n", false},
		{"newer minor", "version: v1.3.2\npickers:\n  a:\n    raw_index: 2\n", false},
		{"next major", "version: v2.0.0\n", true},
		{"missing", "pickers: {}\n", true},
		{"invalid", "version: one\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if got := errors.Is(err, ErrIncompatible); got != tt.incompatible {
				t.Errorf("errors.Is(err, ErrIncompatible) = %v, want %v (err=%v)", got, tt.incompatible, err)
			}
			if !tt.incompatible && err != nil {
				t.Errorf("Decode: %v", err)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("version: [\n"))
	if err == nil || errors.Is(err, ErrIncompatible) {
		t.Errorf("Decode(malformed) = %v, want parse error", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	s.Put("a", wheel.Snapshot{RawIndex: 1})
	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Error("Get after Delete found an entry")
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pickers.yaml")
	if err := NewStore().Save(path); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "pickers.yaml" {
		t.Errorf("dir entries = %v", entries)
	}
}

func TestRestoredPickerKeepsSelection(t *testing.T) {
	s := NewStore()
	s.Put("month", wheel.Snapshot{Infinite: true, RawIndex: wheel.InfiniteOffset - 3})
	data, err := s.Encode()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	st := wheel.NewState(animation.NewScheduler(nil), 0, 12, wheel.Options{Infinite: true, Restore: loaded.Restore("month")})
	if got, _ := st.CurrentLogicalIndex(12); got != 9 {
		t.Errorf("CurrentLogicalIndex() = %d, want 9", got)
	}
}
