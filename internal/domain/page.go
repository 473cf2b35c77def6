package domain

// PageQuery holds the pagination parameters shared by every paged
// platform endpoint. It is projected onto the query string by
// rest.QueryString; the projection is stable, so identical queries
// always produce identical URLs.
type PageQuery struct {
	PageNumber int `url:"pageNumber"`
	PageSize   int `url:"pageSize"`
}

// DefaultPageSize is applied by the platform when PageSize is zero.
const DefaultPageSize = 20

// Normalize returns a copy with zero or negative fields replaced by defaults.
func (q PageQuery) Normalize() PageQuery {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// LodgingQuery filters paged lodging listings.
type LodgingQuery struct {
	PageQuery
	SearchTerm string `url:"searchTerm,omitempty"`
	CityID     int64  `url:"cityId,omitempty"`
}

// BookingQuery filters paged booking listings and booking counts.
type BookingQuery struct {
	PageQuery
	LodgingID int64  `url:"lodgingId,omitempty"`
	Status    string `url:"status,omitempty"`
	From      string `url:"from,omitempty"`
	To        string `url:"to,omitempty"`
}

// MessageQuery filters paged chat message listings.
type MessageQuery struct {
	PageQuery
	GroupID string `url:"groupId,omitempty"`
}
