package rbac

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// SortKey is a user column the listing can be ordered by.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByEmail  SortKey = "email"
	SortByRole   SortKey = "role"
	SortByStatus SortKey = "status"
)

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseSortKey accepts the column names above; "" means SortByName.
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(value)); key {
	case "":
		return SortByName, nil
	case SortByName, SortByEmail, SortByRole, SortByStatus:
		return key, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", value)
	}
}

// ParseDirection accepts "ascending"/"asc" and "descending"/"desc"; "" means
// Ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(value) {
	case "", "asc", string(Ascending):
		return Ascending, nil
	case "desc", string(Descending):
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", value)
	}
}

// UserQuery filters, orders and pages a user list.
type UserQuery struct {
	Search    string
	SortKey   SortKey
	Direction Direction
	PageIndex int
	PageSize  int
}

// NewUserQuery returns a query sorted by name, ascending, on a single page.
func NewUserQuery() UserQuery {
	return UserQuery{SortKey: SortByName, Direction: Ascending}
}

// NewPagedUserQuery is NewUserQuery restricted to one page.
func NewPagedUserQuery(search string, pageIndex int, pageSize int) UserQuery {
	q := NewUserQuery()
	q.Search = search
	q.PageIndex = pageIndex
	q.PageSize = pageSize
	return q
}

// ToggleSort flips the direction when key is already the ascending sort key,
// otherwise sorts ascending by key.
func (q UserQuery) ToggleSort(key SortKey) UserQuery {
	if q.SortKey == key && q.Direction == Ascending {
		q.Direction = Descending
	} else {
		q.SortKey = key
		q.Direction = Ascending
	}
	return q
}

// Matches reports whether the search term occurs, case-insensitively, in the
// name, email or role of u.
func (q UserQuery) Matches(u User) bool {
	term := strings.ToLower(q.Search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term) ||
		strings.Contains(strings.ToLower(string(u.Role)), term)
}

func (q UserQuery) compare(a, b User) int {
	var order int
	switch q.SortKey {
	case SortByEmail:
		order = cmp.Compare(a.Email, b.Email)
	case SortByRole:
		order = cmp.Compare(a.Role, b.Role)
	case SortByStatus:
		order = cmp.Compare(a.Status, b.Status)
	default:
		order = cmp.Compare(a.Name, b.Name)
	}
	if q.Direction == Descending {
		return -order
	}
	return order
}

// Select applies q to users without modifying it.
func Select(users []User, q UserQuery) QueryResponse {
	matched := make([]User, 0, len(users))
	for _, u := range users {
		if q.Matches(u) {
			matched = append(matched, u)
		}
	}
	slices.SortStableFunc(matched, q.compare)

	if q.PageSize <= 0 {
		return NewQueryResponse(matched)
	}
	pageIndex := max(q.PageIndex, 0)
	pages := len(matched) / q.PageSize
	if len(matched)%q.PageSize != 0 {
		pages++
	}
	// The page bound keeps pageIndex*PageSize from overflowing.
	if pageIndex >= pages {
		return NewPagedQueryResponse([]User{}, len(matched), pageIndex, q.PageSize)
	}
	from := pageIndex * q.PageSize
	to := min(from+q.PageSize, len(matched))
	return NewPagedQueryResponse(matched[from:to], len(matched), pageIndex, q.PageSize)
}

type QueryResponse interface {
	Items() []User
	Count() int
	TotalPages() int
	PageNumber() int
	HasPrev() bool
	Prev() int
	HasNext() bool
	Next() int
}

type queryResponse struct {
	items     []User
	count     int
	pageIndex int
	pageSize  int
}

// NewQueryResponse holds every item on a single page.
func NewQueryResponse(items []User) QueryResponse {
	return &queryResponse{items, len(items), 0, max(len(items), 1)}
}

func NewPagedQueryResponse(items []User, count int, pageIndex int, pageSize int) QueryResponse {
	return &queryResponse{items, count, pageIndex, pageSize}
}

func (qr *queryResponse) Items() []User {
	return qr.items
}

func (qr *queryResponse) Count() int {
	return qr.count
}

func (qr *queryResponse) TotalPages() int {
	return int(math.Ceil(float64(qr.count) / float64(qr.pageSize)))
}

func (qr *queryResponse) PageNumber() int {
	return qr.pageIndex + 1
}

func (qr *queryResponse) HasPrev() bool {
	return qr.pageIndex > 0
}

func (qr *queryResponse) Prev() int {
	if qr.HasPrev() {
		return qr.PageNumber() - 1
	}
	return 0
}

func (qr *queryResponse) HasNext() bool {
	return qr.pageIndex < qr.TotalPages()-1
}

func (qr *queryResponse) Next() int {
	if qr.HasNext() {
		return qr.PageNumber() + 1
	}
	return 0
}
