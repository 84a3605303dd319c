package wheel

import (
	stderrors "errors"
	"testing"
)

func TestToLogical(t *testing.T) {
	const k = InfiniteOffset
	tests := []struct {
		name     string
		raw      int
		infinite bool
		n        int
		want     int
	}{
		{"finite passthrough", 3, false, 5, 3},
		{"offset is zero", k, true, 12, 0},
		{"forward wrap", k + 13, true, 12, 1},
		{"backward wrap", k - 1, true, 12, 11},
		{"far backward", k - 25, true, 12, 11},
		{"single item", k + 7, true, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLogical(tt.raw, tt.infinite, tt.n)
			if err != nil {
				t.Fatalf("ToLogical() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToLogical(%d, %v, %d) = %d, want %d", tt.raw, tt.infinite, tt.n, got, tt.want)
			}
		})
	}
}

func TestToLogical_NoItems(t *testing.T) {
	if _, err := ToLogical(InfiniteOffset, true, 0); !stderrors.Is(err, ErrNoItems) {
		t.Errorf("ToLogical with n=0 error = %v, want ErrNoItems", err)
	}
	if got, err := ToLogical(2, false, 0); err != nil || got != 2 {
		t.Errorf("finite ToLogical with n=0 = (%d, %v), want (2, nil)", got, err)
	}
}

func TestToLogical_RoundTripsRawForLogical(t *testing.T) {
	for n := 1; n <= 13; n++ {
		for i := range n {
			got, err := ToLogical(RawForLogical(i, true), true, n)
			if err != nil || got != i {
				t.Errorf("n=%d: ToLogical(RawForLogical(%d)) = (%d, %v)", n, i, got, err)
			}
		}
	}
}

func TestToRawForTarget(t *testing.T) {
	const k = InfiniteOffset
	tests := []struct {
		name    string
		current int
		target  int
		n       int
		want    int
	}{
		{"same item", k + 3, 3, 12, k + 3},
		{"forward within cycle", k, 3, 12, k + 3},
		{"backward across wrap", k, 11, 12, k - 1},
		{"forward across wrap", k + 11, 0, 12, k + 12},
		{"from negative cycle", k - 5, 9, 12, k - 3},
		{"tie prefers forward", k, 2, 4, k + 2},
		{"tie prefers forward odd cycle", k + 5, 3, 4, k + 7},
		{"target normalised", k, 13, 12, k + 1},
		{"no items", k + 4, 1, 0, k + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRawForTarget(tt.current, tt.target, tt.n); got != tt.want {
				t.Errorf("ToRawForTarget(K%+d, %d, %d) = K%+d, want K%+d",
					tt.current-k, tt.target, tt.n, got-k, tt.want-k)
			}
		})
	}
}

func TestToRawForTarget_AlwaysMapsToTargetAndIsNearest(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for offset := -20; offset <= 20; offset++ {
			current := InfiniteOffset + offset
			for target := range n {
				raw := ToRawForTarget(current, target, n)
				if got, _ := ToLogical(raw, true, n); got != target {
					t.Fatalf("n=%d current=K%+d target=%d: raw maps to %d", n, offset, target, got)
				}
				if dist := absInt(raw - current); dist > n/2 {
					t.Fatalf("n=%d current=K%+d target=%d: distance %d exceeds %d", n, offset, target, dist, n/2)
				}
			}
		}
	}
}
