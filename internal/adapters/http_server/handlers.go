package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_store/internal/app"
	"hotel_store/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct{ S *app.HotelService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type roomResponse struct {
	Message string      `json:"message"`
	Room    domain.Room `json:"room"`
}

type imagesRequest struct {
	Images []string `json:"images"`
}

type imagesResponse struct {
	Message string   `json:"message"`
	Images  []string `json:"images"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
		r.Post("/{id}/rooms", h.addRoom)
		r.Post("/{id}/images", h.addImages)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service failures to responses. Only validation messages
// reach the client; anything else is logged and reported generically.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Bad Request", ve.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg(action + " failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "failed to "+action)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "request body must be valid JSON")
		return false
	}
	return true
}

// decodePatch is decodeBody for PUT bodies. Fields a patch cannot change
// (rooms, images, slug) or does not know are rejected rather than dropped.
func decodePatch(w http.ResponseWriter, r *http.Request, dst *domain.HotelPatch) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "field "+field+" cannot be updated")
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Bad Request", "request body must be valid JSON")
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "failed to encode response")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.S.ListHotels(r.Context())
	if err != nil {
		writeError(w, r, err, "retrieve hotels")
		return
	}
	writeCacheable(w, r, hs)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.S.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "retrieve hotel")
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var d domain.HotelDraft
	if !decodeBody(w, r, &d) {
		return
	}
	hotel, err := h.S.CreateHotel(r.Context(), d)
	if err != nil {
		writeError(w, r, err, "add hotel")
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	var p domain.HotelPatch
	if !decodePatch(w, r, &p) {
		return
	}
	hotel, err := h.S.UpdateHotel(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err, "update hotel")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var d domain.RoomDraft
	if !decodeBody(w, r, &d) {
		return
	}
	room, err := h.S.AddRoom(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		writeError(w, r, err, "add room")
		return
	}
	writeJSON(w, http.StatusCreated, roomResponse{Message: "Room added successfully", Room: room})
}

// addImages records paths produced by the upload collaborator.
func (h *Handlers) addImages(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	added, err := h.S.AddImages(r.Context(), chi.URLParam(r, "id"), req.Images)
	if err != nil {
		writeError(w, r, err, "upload images")
		return
	}
	writeJSON(w, http.StatusOK, imagesResponse{Message: "Images uploaded successfully", Images: added})
}
