package scaleapi

import "iter"

// Page is one page of a listing together with the metadata needed to ask
// for the next one. Items keep the order the server returned them in.
type Page[T any] struct {
	Items     []T
	Total     int
	Limit     int
	Offset    int
	HasMore   bool
	NextToken string
}

// TaskList is a page of tasks.
type TaskList = Page[*Task]

// BatchList is a page of batches.
type BatchList = Page[*Batch]

// Len returns the number of items on the page.
func (p *Page[T]) Len() int {
	return len(p.Items)
}

// At returns the i-th item. It panics if i is out of range, like a slice.
func (p *Page[T]) At(i int) T {
	return p.Items[i]
}

// All iterates over the items with their index.
func (p *Page[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range p.Items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// listResponse is the raw JSON structure for paginated responses.
type listResponse struct {
	Docs      []Document `json:"docs"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	HasMore   bool       `json:"has_more"`
	NextToken *string    `json:"next_token"`
}

func newPage[T any](resp *listResponse, wrap func(Document) T) *Page[T] {
	items := make([]T, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		items = append(items, wrap(doc))
	}
	page := &Page[T]{
		Items:   items,
		Total:   resp.Total,
		Limit:   resp.Limit,
		Offset:  resp.Offset,
		HasMore: resp.HasMore,
	}
	if resp.NextToken != nil {
		page.NextToken = *resp.NextToken
	}
	return page
}
