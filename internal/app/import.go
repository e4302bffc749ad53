package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_store/internal/domain"
)

// ImportResult reports the outcome of one draft, in input order.
type ImportResult struct {
	Index int
	Title string
	Hotel domain.Hotel
	Err   error
}

// DecodeDrafts reads a JSON array of hotel drafts.
func DecodeDrafts(r io.Reader) ([]domain.HotelDraft, error) {
	var drafts []domain.HotelDraft
	if err := json.NewDecoder(r).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}

// ImportHotels creates every draft with at most workers creations in flight.
// A failed draft does not stop the others.
func (s *HotelService) ImportHotels(ctx context.Context, drafts []domain.HotelDraft, workers int) []ImportResult {
	if workers <= 0 {
		workers = 1
	}
	results := make([]ImportResult, len(drafts))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, d := range drafts {
		results[i] = ImportResult{Index: i, Title: d.Title}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(drafts); j++ {
				results[j] = ImportResult{Index: j, Title: drafts[j].Title, Err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, d domain.HotelDraft) {
			defer wg.Done()
			defer sem.Release(1)

			h, err := s.CreateHotel(ctx, d)
			if err != nil {
				log.Warn().Int("index", i).Str("title", d.Title).Err(err).Msg("import failed")
				results[i].Err = err
				return
			}
			results[i].Hotel = h
		}(i, d)
	}

	wg.Wait()
	return results
}
