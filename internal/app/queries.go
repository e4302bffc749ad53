package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_store/internal/domain"
)

const listKey = "hotels:all"

func hotelKey(id string) string { return "hotel:" + id }

func (s *HotelService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cacheGet(ctx, key, &h) {
		return h, nil
	}
	gen := s.generation()
	h, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cacheFill(ctx, key, h, gen)
	return h, nil
}

// ListHotels returns every readable hotel; corrupt units are left out by the store.
func (s *HotelService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var hs []domain.Hotel
	if s.cacheGet(ctx, listKey, &hs) {
		return hs, nil
	}
	gen := s.generation()
	hs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheFill(ctx, listKey, hs, gen)
	return hs, nil
}

// Invalidate drops cached copies of one hotel and of the full listing.
func (s *HotelService) Invalidate(ctx context.Context, id string) { s.invalidate(ctx, id) }

// invalidate bumps the fill generation before deleting, so a read that
// loaded its value before the mutation cannot store it afterwards.
func (s *HotelService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	s.fillMu.Lock()
	s.gen++
	s.fillMu.Unlock()
	for _, key := range []string{hotelKey(id), listKey} {
		if err := s.cache.Del(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
		}
	}
}

func (s *HotelService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *HotelService) generation() uint64 {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	return s.gen
}

// cacheFill stores v only if no invalidation happened since gen was taken.
// The check and the write share fillMu with the bump in invalidate.
func (s *HotelService) cacheFill(ctx context.Context, key string, v any, gen uint64) {
	if s.cache == nil {
		return
	}
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if s.gen != gen {
		log.Debug().Str("key", key).Msg("skipping cache fill after concurrent write")
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
