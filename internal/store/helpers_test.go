package store

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, defaultListLimit, 0},
		{-5, -1, defaultListLimit, 0},
		{20, 40, 20, 40},
		{5000, 0, maxListLimit, 0},
	}

	for _, tc := range tests {
		l, o := clampPage(tc.limit, tc.offset)
		if l != tc.wantLimit || o != tc.wantOffset {
			t.Errorf("clampPage(%d, %d) = %d, %d, want %d, %d", tc.limit, tc.offset, l, o, tc.wantLimit, tc.wantOffset)
		}
	}
}
