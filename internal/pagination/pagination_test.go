package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mounted returns a controller whose initial fetch resolved with totalPage pages.
func mounted(t *testing.T, totalPage int) *Controller[string] {
	t.Helper()
	c := NewController[string](DefaultWindowSize)
	req := c.Start()
	c.OnFetchStart(req)
	require.True(t, c.OnFetchResolved(req, []string{"p1"}, totalPage))
	return c
}

func pages(ns ...int) []WindowEntry {
	out := make([]WindowEntry, 0, len(ns))
	for _, n := range ns {
		if n == 0 {
			out = append(out, Ellipsis())
			continue
		}
		out = append(out, PageEntry(n))
	}
	return out
}

// countEntries is the expected selector length for a window [start, end].
func countEntries(start, end, total int) int {
	n := end - start + 1
	if start > 1 {
		n++
	}
	if start > 2 {
		n++
	}
	if end < total {
		n++
	}
	if end < total-1 {
		n++
	}
	return n
}

func TestNewController_MountState(t *testing.T) {
	c := NewController[string](DefaultWindowSize)

	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 1, c.TotalPage())
	assert.Empty(t, c.Items())
	assert.True(t, c.Loading())

	req := c.Start()
	assert.Equal(t, 1, req.Page)
	assert.True(t, c.IsCurrent(req))
}

func TestNewController_WindowSizeFallback(t *testing.T) {
	assert.Equal(t, DefaultWindowSize, NewController[int](0).WindowSize())
	assert.Equal(t, DefaultWindowSize, NewController[int](2).WindowSize())
	assert.Equal(t, 9, NewController[int](9).WindowSize())
}

func TestController_SetPage(t *testing.T) {
	c := mounted(t, 10)

	for n := 1; n <= 10; n++ {
		req, ok := c.SetPage(n)
		require.True(t, ok, "page %d", n)
		assert.Equal(t, n, c.Page())
		assert.Equal(t, n, req.Page)
	}

	c.SetPage(4)
	for _, n := range []int{-1, 0, 11, 100} {
		_, ok := c.SetPage(n)
		assert.False(t, ok, "page %d", n)
		assert.Equal(t, 4, c.Page())
	}
}

func TestController_Shortcuts(t *testing.T) {
	c := mounted(t, 3)

	_, ok := c.Prev()
	assert.False(t, ok)
	_, ok = c.First()
	assert.False(t, ok)

	_, ok = c.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, c.Page())

	_, ok = c.Last()
	assert.True(t, ok)
	assert.Equal(t, 3, c.Page())

	_, ok = c.Next()
	assert.False(t, ok)
	assert.Equal(t, 3, c.Page())

	_, ok = c.First()
	assert.True(t, ok)
	assert.Equal(t, 1, c.Page())
}

func TestController_OnFetchResolved(t *testing.T) {
	c := mounted(t, 5)

	req, ok := c.SetPage(2)
	require.True(t, ok)
	c.OnFetchStart(req)
	assert.True(t, c.Loading())
	assert.Equal(t, []string{"p1"}, c.Items(), "in-flight fetch must not touch items")

	assert.True(t, c.OnFetchResolved(req, []string{"a", "b"}, 8))
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.Equal(t, 8, c.TotalPage())
	assert.False(t, c.Loading())
}

func TestController_OnFetchResolved_NormalisesTotal(t *testing.T) {
	c := NewController[string](DefaultWindowSize)
	req := c.Start()

	assert.True(t, c.OnFetchResolved(req, nil, 0))
	assert.Equal(t, 1, c.TotalPage())
	assert.NotNil(t, c.Items())
	assert.Empty(t, c.Items())
}

func TestController_OnFetchFailed(t *testing.T) {
	c := mounted(t, 4)

	req, _ := c.SetPage(3)
	c.OnFetchStart(req)

	surface := c.OnFetchFailed(req, errors.New("connection refused"))
	assert.True(t, surface)
	assert.Equal(t, []string{"p1"}, c.Items())
	assert.Equal(t, 4, c.TotalPage())
	assert.False(t, c.Loading())
	assert.Equal(t, 3, c.Page(), "failure never moves the page")
}

func TestController_OutOfOrderResolution(t *testing.T) {
	c := mounted(t, 10)

	req2, _ := c.SetPage(2)
	c.OnFetchStart(req2)
	req3, _ := c.SetPage(3)
	c.OnFetchStart(req3)

	assert.True(t, c.OnFetchResolved(req3, []string{"page3"}, 10))
	assert.False(t, c.OnFetchResolved(req2, []string{"page2"}, 10), "stale response must be dropped")

	assert.Equal(t, 3, c.Page())
	assert.Equal(t, []string{"page3"}, c.Items())
	assert.False(t, c.Loading())
}

func TestController_StaleResponseKeepsLoading(t *testing.T) {
	c := mounted(t, 10)

	req2, _ := c.SetPage(2)
	req3, _ := c.SetPage(3)
	c.OnFetchStart(req3)

	assert.False(t, c.OnFetchResolved(req2, []string{"page2"}, 10))
	assert.True(t, c.Loading())
	assert.Equal(t, []string{"p1"}, c.Items())

	assert.True(t, c.OnFetchResolved(req3, []string{"page3"}, 10))
	assert.False(t, c.Loading())
}

func TestController_SamePageOutOfOrder(t *testing.T) {
	c := mounted(t, 10)

	older, _ := c.SetPage(2)
	c.SetPage(3)
	newer, _ := c.SetPage(2)

	assert.True(t, c.OnFetchResolved(newer, []string{"newer"}, 10))
	assert.False(t, c.OnFetchResolved(older, []string{"older"}, 10))
	assert.Equal(t, []string{"newer"}, c.Items())
}

func TestController_OlderSamePageResolvesFirst(t *testing.T) {
	c := mounted(t, 10)

	older, _ := c.SetPage(2)
	c.SetPage(3)
	newer, _ := c.SetPage(2)
	c.OnFetchStart(newer)

	assert.True(t, c.OnFetchResolved(older, []string{"older"}, 10))
	assert.Equal(t, []string{"older"}, c.Items())
	assert.True(t, c.Loading(), "latest request still outstanding")
	assert.True(t, c.OnFetchResolved(newer, []string{"newer"}, 10))
	assert.False(t, c.Loading())
	assert.Equal(t, []string{"newer"}, c.Items())
}

func TestController_RejectsOtherControllersRequests(t *testing.T) {
	first := mounted(t, 10)
	leftover, _ := first.SetPage(2)

	second := mounted(t, 10)
	mine, _ := second.SetPage(2)
	second.OnFetchStart(mine)
	require.NotEqual(t, first.ID(), second.ID())
	require.Equal(t, leftover.Page, mine.Page)
	require.Equal(t, leftover.Seq, mine.Seq)

	assert.False(t, second.OnFetchResolved(leftover, []string{"leftover"}, 3))
	assert.False(t, second.OnFetchFailed(leftover, errors.New("late")))
	assert.False(t, second.IsCurrent(leftover))
	assert.Equal(t, []string{"p1"}, second.Items())
	assert.Equal(t, 10, second.TotalPage())
	assert.True(t, second.Loading())

	assert.True(t, second.IsCurrent(mine))
	assert.True(t, second.OnFetchResolved(mine, []string{"mine"}, 10))
	assert.Equal(t, []string{"mine"}, second.Items())
}

func TestController_StaleFailureDropped(t *testing.T) {
	c := mounted(t, 10)

	req2, _ := c.SetPage(2)
	req3, _ := c.SetPage(3)
	c.OnFetchStart(req3)

	assert.False(t, c.OnFetchFailed(req2, errors.New("timeout")))
	assert.True(t, c.Loading())
}

func TestController_Reconcile(t *testing.T) {
	c := mounted(t, 10)

	req, _ := c.SetPage(9)
	require.True(t, c.OnFetchResolved(req, nil, 5))
	assert.Equal(t, 9, c.Page())

	follow, ok := c.Reconcile()
	require.True(t, ok)
	assert.Equal(t, 5, follow.Page)
	assert.Equal(t, 5, c.Page())

	_, ok = c.Reconcile()
	assert.False(t, ok)
}

func TestController_Reload(t *testing.T) {
	c := mounted(t, 3)
	c.SetPage(2)

	req := c.Reload()
	assert.Equal(t, 2, req.Page)
	assert.True(t, c.IsCurrent(req))
}

func TestVisiblePageWindow_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  []WindowEntry
	}{
		{"first of ten", 1, 10, pages(1, 2, 3, 4, 5, 6, 7, 0, 10)},
		{"last of ten", 10, 10, pages(1, 0, 4, 5, 6, 7, 8, 9, 10)},
		{"single page", 1, 1, pages(1)},
		{"middle of twenty", 10, 20, pages(1, 0, 7, 8, 9, 10, 11, 12, 13, 0, 20)},
		{"fits exactly", 4, 7, pages(1, 2, 3, 4, 5, 6, 7)},
		{"shortcut without ellipsis", 5, 8, pages(1, 2, 3, 4, 5, 6, 7, 8)},
		{"one gap page on the right", 4, 9, pages(1, 2, 3, 4, 5, 6, 7, 0, 9)},
		{"start two", 5, 20, pages(1, 2, 3, 4, 5, 6, 7, 8, 0, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisiblePageWindow(tt.page, tt.total, DefaultWindowSize))
		})
	}
}

func TestVisiblePageWindow_Properties(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for page := 1; page <= total; page++ {
			got := VisiblePageWindow(page, total, DefaultWindowSize)
			start, end := WindowBounds(page, total, DefaultWindowSize)

			assert.LessOrEqual(t, start, page)
			assert.GreaterOrEqual(t, end, page)
			assert.Contains(t, got, PageEntry(page))

			assert.Equal(t, PageEntry(1), got[0])
			assert.Len(t, got, countEntries(start, end, total), "page=%d total=%d", page, total)
			leadingEllipsis := len(got) > 1 && got[1].IsEllipsis()
			assert.Equal(t, start >= 3, leadingEllipsis, "page=%d total=%d", page, total)

			last := got[len(got)-1]
			assert.Equal(t, PageEntry(total), last)
			trailingEllipsis := len(got) > 1 && got[len(got)-2].IsEllipsis()
			assert.Equal(t, end < total-1, trailingEllipsis, "page=%d total=%d", page, total)

			count := 0
			for _, e := range got {
				if e == PageEntry(1) {
					count++
				}
			}
			assert.Equal(t, 1, count, "page 1 appears once")
		}
	}
}

func TestVisiblePageWindow_ControllerUsesState(t *testing.T) {
	c := mounted(t, 10)
	c.SetPage(10)
	assert.Equal(t, pages(1, 0, 4, 5, 6, 7, 8, 9, 10), c.VisiblePageWindow())
}

func TestFormatWindow(t *testing.T) {
	got := FormatWindow(VisiblePageWindow(1, 10, DefaultWindowSize), 1)
	assert.Equal(t, "[1] 2 3 4 5 6 7 … 10", got)
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(1, 3, 10, false)
	assert.False(t, m.HasPrevious)
	assert.True(t, m.HasNext)

	m = NewMeta(3, 3, 2, true)
	assert.True(t, m.HasPrevious)
	assert.False(t, m.HasNext)
	assert.True(t, m.Loading)

	m = NewMeta(1, 0, 0, false)
	assert.Equal(t, 1, m.TotalPages)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"defaults", *NewParams(), nil},
		{"page zero", Params{Page: 0, WindowSize: 7, SortOrder: "asc"}, ErrInvalidPage},
		{"window too small", Params{Page: 1, WindowSize: 2, SortOrder: "asc"}, ErrInvalidWindowSize},
		{"window too large", Params{Page: 1, WindowSize: 26, SortOrder: "asc"}, ErrInvalidWindowSize},
		{"bad order", Params{Page: 1, WindowSize: 7, SortOrder: "up"}, ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{"", DefaultSortField, DefaultSortOrder, nil},
		{"price", "price", "asc", nil},
		{"count:DESC", "count", "desc", nil},
		{" name : asc ", "name", "asc", nil},
		{"a:b:c", "", "", ErrInvalidSortFormat},
		{":desc", "", "", ErrEmptySortField},
		{"price:sideways", "", "", ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, order, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}
