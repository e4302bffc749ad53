package app

import "hotel_store/internal/domain"

// fromDraft copies a draft into a new record. Lists are never nil so a
// fresh hotel serialises with [] rather than null.
func fromDraft(d domain.HotelDraft) domain.Hotel {
	return domain.Hotel{
		Title:           d.Title,
		Description:     d.Description,
		GuestCount:      d.GuestCount,
		BedroomCount:    d.BedroomCount,
		BathroomCount:   d.BathroomCount,
		Amenities:       cloneStrings(d.Amenities),
		HostInformation: d.HostInformation,
		Address:         d.Address,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		Images:          cloneStrings(d.Images),
		Rooms:           []domain.Room{},
	}
}

// applyPatch overwrites every field p sets and leaves the rest alone.
// Lists are replaced wholesale, not merged.
func applyPatch(h *domain.Hotel, p domain.HotelPatch, slugs domain.Slugger) {
	if p.Title != nil {
		h.Title = *p.Title
		h.Slug = slugs.Make(*p.Title)
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.GuestCount != nil {
		h.GuestCount = *p.GuestCount
	}
	if p.BedroomCount != nil {
		h.BedroomCount = *p.BedroomCount
	}
	if p.BathroomCount != nil {
		h.BathroomCount = *p.BathroomCount
	}
	if p.Amenities != nil {
		h.Amenities = cloneStrings(p.Amenities)
	}
	if p.HostInformation != nil {
		h.HostInformation = *p.HostInformation
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.Latitude != nil {
		h.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		h.Longitude = *p.Longitude
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
