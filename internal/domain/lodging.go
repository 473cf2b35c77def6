package domain

// Lodging represents an accommodation listing.
type Lodging struct {
	BaseModel
	Name        string    `gorm:"size:200;not null" json:"name" binding:"required,min=2,max=200"`
	Description string    `gorm:"size:4000" json:"description"`
	CityID      int64     `json:"cityId"`
	Address     string    `gorm:"size:500" json:"address"`
	Capacity    int       `json:"capacity"`
	Amenities   []Amenity `gorm:"many2many:lodging_amenities" json:"amenities,omitempty"`
	Images      []Media   `gorm:"-" json:"images,omitempty"`
	Videos      []Media   `gorm:"-" json:"videos,omitempty"`
}

// Amenity represents a feature a lodging can offer. Amenities form a
// two-level tree: a child amenity carries the id of its parent.
type Amenity struct {
	BaseModel
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name" binding:"required,min=2,max=100"`
	ParentID int64  `json:"parentId,omitempty"`
}

// Media describes an uploaded image or video attached to an entity.
type Media struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// MediaRef bundles an owning entity id with a media id for
// add/remove media operations.
type MediaRef struct {
	EntityID int64  `json:"entityId"`
	MediaID  string `json:"mediaId"`
}
