package domain

// Hotel is the persisted root record. One unit on disk per ID.
type Hotel struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	GuestCount      int             `json:"guestCount"`
	BedroomCount    int             `json:"bedroomCount"`
	BathroomCount   int             `json:"bathroomCount"`
	Amenities       []string        `json:"amenities"`
	HostInformation HostInformation `json:"hostInformation"`
	Address         string          `json:"address"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Images          []string        `json:"images"`
	Rooms           []Room          `json:"rooms"`
}

type HostInformation struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Room is embedded in its hotel and is not addressable on its own.
// HotelSlug records the owner's slug at the time the room was added.
type Room struct {
	RoomSlug     string `json:"roomSlug"`
	HotelSlug    string `json:"hotelSlug"`
	RoomTitle    string `json:"roomTitle"`
	BedroomCount int    `json:"bedroomCount"`
	RoomImage    string `json:"roomImage,omitempty"`
}

// HotelDraft is the caller-supplied part of a new hotel. ID and slug are
// assigned by the service.
type HotelDraft struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	GuestCount      int             `json:"guestCount" validate:"gte=0"`
	BedroomCount    int             `json:"bedroomCount" validate:"gte=0"`
	BathroomCount   int             `json:"bathroomCount" validate:"gte=0"`
	Amenities       []string        `json:"amenities"`
	HostInformation HostInformation `json:"hostInformation"`
	Address         string          `json:"address"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Images          []string        `json:"images"`
}

// HotelPatch carries the fields of a partial update. A nil field is left
// untouched. ID is accepted so that decoded request bodies round-trip, but
// it is never applied. Rooms and images only grow through their own
// operations and are not patchable.
type HotelPatch struct {
	ID              *string          `json:"id,omitempty"`
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	GuestCount      *int             `json:"guestCount,omitempty" validate:"omitnil,gte=0"`
	BedroomCount    *int             `json:"bedroomCount,omitempty" validate:"omitnil,gte=0"`
	BathroomCount   *int             `json:"bathroomCount,omitempty" validate:"omitnil,gte=0"`
	Amenities       []string         `json:"amenities,omitempty"`
	HostInformation *HostInformation `json:"hostInformation,omitempty"`
	Address         *string          `json:"address,omitempty"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
}

// RoomDraft is the caller-supplied part of a new room. RoomSlug and
// HotelSlug are assigned by the service.
type RoomDraft struct {
	RoomTitle    string `json:"roomTitle"`
	BedroomCount int    `json:"bedroomCount" validate:"gte=0"`
	RoomImage    string `json:"roomImage,omitempty"`
}

// RoomSlugs returns the slugs already used by the hotel's rooms.
func (h Hotel) RoomSlugs() map[string]struct{} {
	out := make(map[string]struct{}, len(h.Rooms))
	for _, r := range h.Rooms {
		out[r.RoomSlug] = struct{}{}
	}
	return out
}
