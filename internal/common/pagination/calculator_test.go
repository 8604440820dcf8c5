package pagination_test

import (
	"testing"

	"provider-directory/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "second page", page: 2, pageSize: 10, want: 10},
		{name: "third page", page: 3, pageSize: 10, want: 20},
		{name: "page 10 with page size 50", page: 10, pageSize: 50, want: 450},
		{name: "page 1 with page size 1", page: 1, pageSize: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.CalculateOffset(tt.page, tt.pageSize)
			if got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{name: "zero count", count: 0, pageSize: 10, want: 1},
		{name: "count less than page size", count: 6, pageSize: 10, want: 1},
		{name: "count equals page size", count: 10, pageSize: 10, want: 1},
		{name: "count one more than page size", count: 11, pageSize: 10, want: 2},
		{name: "partial last page", count: 26, pageSize: 10, want: 3},
		{name: "exact multiple", count: 30, pageSize: 10, want: 3},
		{name: "page size 1", count: 7, pageSize: 1, want: 7},
		{name: "non-positive page size", count: 7, pageSize: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.CalculateTotalPages(tt.count, tt.pageSize)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages_CeilingProperty(t *testing.T) {
	t.Parallel()

	for pageSize := 1; pageSize <= 25; pageSize++ {
		for count := 0; count <= 200; count++ {
			got := pagination.CalculateTotalPages(count, pageSize)
			if got < 1 {
				t.Fatalf("CalculateTotalPages(%d, %d) = %d, want >= 1", count, pageSize, got)
			}
			if count == 0 {
				continue
			}
			// got is the smallest page count that holds every record.
			if got*pageSize < count || (got-1)*pageSize >= count {
				t.Fatalf("CalculateTotalPages(%d, %d) = %d is not the ceiling", count, pageSize, got)
			}
		}
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	params := pagination.Params{Page: 1, PageSize: 10}

	t.Run("nothing fetched yet", func(t *testing.T) {
		t.Parallel()
		got := pagination.Compute(params, nil)
		want := pagination.State{Page: 1, PageSize: 10, Total: 0, Count: 0, TotalPages: 1}
		if got != want {
			t.Errorf("Compute(nil) = %+v, want %+v", got, want)
		}
	})

	t.Run("counts pages correctly", func(t *testing.T) {
		t.Parallel()
		got := pagination.Compute(params, &pagination.Summary{Count: 26, PageItemCount: 10})
		want := pagination.State{Page: 1, PageSize: 10, Total: 10, Count: 26, TotalPages: 3}
		if got != want {
			t.Errorf("Compute() = %+v, want %+v", got, want)
		}
	})

	t.Run("page past the end is not clamped", func(t *testing.T) {
		t.Parallel()
		got := pagination.Compute(pagination.Params{Page: 9, PageSize: 10}, &pagination.Summary{Count: 26})
		if got.Page != 9 || got.TotalPages != 3 {
			t.Errorf("Compute() = %+v, want page 9 of 3", got)
		}
	})
}

func TestState_Caption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state pagination.State
		want  string
	}{
		{
			name:  "first page",
			state: pagination.State{Page: 1, PageSize: 10, Total: 10, Count: 26, TotalPages: 3},
			want:  "Showing 1 - 10 of 26",
		},
		{
			name:  "middle page",
			state: pagination.State{Page: 2, PageSize: 10, Total: 10, Count: 26, TotalPages: 3},
			want:  "Showing 11 - 20 of 26",
		},
		{
			name:  "last partial page",
			state: pagination.State{Page: 3, PageSize: 10, Total: 6, Count: 26, TotalPages: 3},
			want:  "Showing 21 - 26 of 26",
		},
		{
			name:  "single full page",
			state: pagination.State{Page: 1, PageSize: 10, Total: 10, Count: 10, TotalPages: 1},
			want:  "Showing 1 - 10 of 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.state.Caption(); got != tt.want {
				t.Errorf("Caption() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Range_LastPageEndsAtCount(t *testing.T) {
	t.Parallel()

	for count := 1; count <= 95; count++ {
		pageSize := 10
		last := pagination.CalculateTotalPages(count, pageSize)
		onLast := count - pagination.CalculateOffset(last, pageSize)
		st := pagination.Compute(pagination.Params{Page: last, PageSize: pageSize},
			&pagination.Summary{Count: count, PageItemCount: onLast})

		_, end := st.Range()
		if end != count {
			t.Fatalf("count=%d: last page ends at %d", count, end)
		}
	}
}
