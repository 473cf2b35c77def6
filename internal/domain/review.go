package domain

// Review represents a vacation review left for a lodging.
// Reviews are read-only through this client; the platform has never
// shipped the mutation endpoints (see service/review).
type Review struct {
	BaseModel
	LodgingID int64  `json:"lodgingId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
