package search

import (
	"context"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
)

// View is the resource-independent, JSON-ready rendering of a State.
type View struct {
	Resource            string           `json:"resource"`
	Location            string           `json:"location"`
	Query               *string          `json:"query"`
	Sort                string           `json:"sort"`
	Status              Status           `json:"status"`
	Data                any              `json:"data"`
	IsLoading           bool             `json:"is_loading"`
	IsBackgroundLoading bool             `json:"is_background_loading"`
	Error               *string          `json:"error"`
	Pagination          pagination.State `json:"pagination"`
	Caption             string           `json:"caption"`
	SortOptions         []sorting.Option `json:"sort_options"`
	Version             uint64           `json:"version"`

	// Records summarizes each result in order for text renderings.
	Records []Record `json:"-"`
}

// Record is the listing summary of one result.
type Record struct {
	ID       string
	Name     string
	NPI      string
	Location string
}

// ViewOf renders st.
func ViewOf[T any](st *State[T]) View {
	v := View{
		Resource:            st.Resource.Collection(),
		Location:            st.Location,
		Sort:                st.Sort,
		Status:              st.Status(),
		Data:                st.Results,
		IsLoading:           st.IsLoading,
		IsBackgroundLoading: st.IsBackgroundLoading,
		Pagination:          *st.Pagination,
		Caption:             st.Caption(),
		SortOptions:         st.SortOptions,
		Version:             st.Version,
	}
	if st.Params.Query != nil {
		q := *st.Params.Query
		v.Query = &q
	}
	if st.Error != "" {
		e := st.Error
		v.Error = &e
	}
	items, _ := st.Results.Items()
	for i := range items {
		if n, ok := any(&items[i]).(entity.Named); ok {
			v.Records = append(v.Records, Record{
				ID:       n.RecordID(),
				Name:     n.DisplayName(),
				NPI:      n.NPI(),
				Location: n.Location(),
			})
		}
	}
	return v
}

// Session is a Controller with its record type erased.
type Session interface {
	Resource() entity.ResourceType
	SortOptions() []sorting.Option

	SetQuery(ctx context.Context, q string) error
	NavigateToPage(ctx context.Context, p int) error
	SetSort(ctx context.Context, s string) error
	ClearSearch(ctx context.Context) error
	Restore(ctx context.Context, raw string) error

	View() View
	Await(ctx context.Context) (View, error)
	Changed() <-chan struct{}
	Close()
}

// View renders the current snapshot.
func (c *Controller[T]) View() View {
	return ViewOf(c.Snapshot())
}

// Await is Settled rendered as a View.
func (c *Controller[T]) Await(ctx context.Context) (View, error) {
	st, err := c.Settled(ctx)
	return ViewOf(st), err
}

var _ Session = (*Controller[entity.Organization])(nil)
