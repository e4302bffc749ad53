package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_store/internal/domain"
)

// HotelService is the only writer of hotel state. Every mutation of an
// existing hotel goes through HotelStore.Update, which serialises writers
// per hotel ID.
type HotelService struct {
	store    domain.HotelStore
	slugs    domain.Slugger
	cache    domain.Cache
	cacheTTL time.Duration
	newID    func() string

	fillMu sync.Mutex
	gen    uint64 // bumped on every invalidation
}

type Option func(*HotelService)

// WithCache enables cache-aside reads. A nil cache disables caching.
func WithCache(c domain.Cache, ttl time.Duration) Option {
	return func(s *HotelService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *HotelService) { s.newID = fn }
}

func NewHotelService(store domain.HotelStore, slugs domain.Slugger, opts ...Option) *HotelService {
	s := &HotelService{store: store, slugs: slugs, newID: newID}
	for _, o := range opts {
		o(s)
	}
	return s
}

// newID returns a time-ordered UUID so IDs sort by creation time.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *HotelService) CreateHotel(ctx context.Context, d domain.HotelDraft) (domain.Hotel, error) {
	if err := validateDraft(d); err != nil {
		return domain.Hotel{}, err
	}

	h := fromDraft(d)
	h.ID = s.newID()
	h.Slug = s.slugs.Make(d.Title)

	if err := s.store.Put(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, h.ID)

	log.Info().Str("id", h.ID).Str("slug", h.Slug).Msg("hotel created")
	return h, nil
}

// UpdateHotel shallow-merges p over the stored record. The slug follows the
// title only when p carries one; p.ID is ignored.
func (s *HotelService) UpdateHotel(ctx context.Context, id string, p domain.HotelPatch) (domain.Hotel, error) {
	if err := validatePatch(p); err != nil {
		return domain.Hotel{}, err
	}

	h, err := s.store.Update(ctx, id, func(h *domain.Hotel) error {
		applyPatch(h, p, s.slugs)
		return nil
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, id)

	log.Info().Str("id", id).Str("slug", h.Slug).Msg("hotel updated")
	return h, nil
}

// AddRoom appends one room. Its slug is unique among the hotel's rooms.
func (s *HotelService) AddRoom(ctx context.Context, hotelID string, d domain.RoomDraft) (domain.Room, error) {
	if err := validateStruct(d); err != nil {
		return domain.Room{}, err
	}

	var room domain.Room
	_, err := s.store.Update(ctx, hotelID, func(h *domain.Hotel) error {
		room = domain.Room{
			RoomSlug:     s.slugs.Unique(d.RoomTitle, h.RoomSlugs()),
			HotelSlug:    h.Slug,
			RoomTitle:    d.RoomTitle,
			BedroomCount: d.BedroomCount,
			RoomImage:    d.RoomImage,
		}
		h.Rooms = append(h.Rooms, room)
		return nil
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.invalidate(ctx, hotelID)

	log.Info().Str("id", hotelID).Str("room", room.RoomSlug).Msg("room added")
	return room, nil
}

// AddImages appends already-stored image paths in the given order and
// returns the appended paths. A missing hotel is reported before an empty
// path list.
func (s *HotelService) AddImages(ctx context.Context, hotelID string, paths []string) ([]string, error) {
	added := make([]string, len(paths))
	copy(added, paths)

	_, err := s.store.Update(ctx, hotelID, func(h *domain.Hotel) error {
		if len(added) == 0 {
			return domain.Invalid("images", "no images were uploaded")
		}
		for _, p := range added {
			if strings.TrimSpace(p) == "" {
				return domain.Invalid("images", "must not contain empty paths")
			}
		}
		h.Images = append(h.Images, added...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, hotelID)

	log.Info().Str("id", hotelID).Int("count", len(added)).Msg("images added")
	return added, nil
}
