package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medplant/plantgate/domain/gateway"
)

// maxUploadBytes caps identification image uploads.
const maxUploadBytes = 10 << 20

// Identify relays a plant photo to the upstream recognizer.
// The multipart body streams through untouched; the response is
// reshaped so confidence reads as a whole-number percentage.
//
//	@Summary		Identify a plant
//	@Description	Uploads a plant photo and returns the identification result
//	@Tags			Plants
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Plant photo"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	errorBody
//	@Failure		422		{object}	errorBody
//	@Router			/api/identify [post]
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		writeError(w, gateway.ValidationError([]gateway.FieldError{
			{Field: "file", Message: "A multipart image upload is required"},
		}))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	payload, err := h.upstream.Identify(r.Context(), tokenFrom(r.Context()), contentType, body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, normalizeConfidence(payload, h))
}

// normalizeConfidence rewrites data.confidence from the recognizer's
// 0.0-1.0 fraction to a rounded whole-number percentage. A payload
// that doesn't match the expected shape passes through unchanged.
func normalizeConfidence(payload json.RawMessage, h *Handler) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return payload
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(envelope["data"], &data); err != nil {
		return payload
	}

	var confidence float64
	if err := json.Unmarshal(data["confidence"], &confidence); err != nil {
		return payload
	}

	percent, err := json.Marshal(int(math.Round(confidence * 100)))
	if err != nil {
		return payload
	}
	data["confidence"] = percent

	reshaped, err := json.Marshal(data)
	if err != nil {
		return payload
	}
	envelope["data"] = reshaped

	out, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not reshape identification payload")
		return payload
	}
	return out
}

// SavedPlants lists the catalogue of previously identified plants.
//
//	@Summary	List saved plants
//	@Tags		Plants
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/plants [get]
func (h *Handler) SavedPlants(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.SavedPlants)
}

// PlantDetails fetches the profile for one plant. Scientific names
// contain spaces and the odd slash, so the path segment arrives
// percent-encoded and is decoded before the upstream call.
//
//	@Summary	Plant details
//	@Tags		Plants
//	@Produce	json
//	@Param		scientificName	path		string	true	"Scientific name, percent-encoded"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	401				{object}	errorBody
//	@Failure	404				{object}	errorBody
//	@Router		/api/plants/{scientificName} [get]
func (h *Handler) PlantDetails(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "scientificName"))
	if err != nil {
		writeError(w, gateway.ValidationError([]gateway.FieldError{
			{Field: "scientificName", Message: "Malformed percent-encoding"},
		}))
		return
	}

	payload, err := h.upstream.PlantDetails(r.Context(), tokenFrom(r.Context()), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, payload)
}

// Identifications lists the user's identification history.
//
//	@Summary	Identification history
//	@Tags		Plants
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/identifications [get]
func (h *Handler) Identifications(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.Identifications)
}

// DeleteIdentification removes one history entry.
//
//	@Summary	Delete an identification
//	@Tags		Plants
//	@Produce	json
//	@Param		id	path		string	true	"Identification ID"
//	@Success	200	{object}	map[string]string
//	@Failure	401	{object}	errorBody
//	@Failure	404	{object}	errorBody
//	@Router		/api/user/identifications/{id} [delete]
func (h *Handler) DeleteIdentification(w http.ResponseWriter, r *http.Request) {
	payload, err := h.upstream.DeleteIdentification(r.Context(), tokenFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload, &body) == nil && body.Message != "" {
		writeRaw(w, http.StatusOK, payload)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Identification deleted successfully"})
}

// ToggleFavorite flips the favorite flag on a history entry.
//
//	@Summary	Toggle favorite
//	@Tags		Plants
//	@Produce	json
//	@Param		id	path		string	true	"Identification ID"
//	@Success	200	{object}	map[string]interface{}	"Includes the new is_favorite state"
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/identifications/{id}/favorite [post]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	payload, err := h.upstream.ToggleFavorite(r.Context(), tokenFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, payload)
}

// UserStats returns aggregate counters for the dashboard.
//
//	@Summary	User statistics
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/stats [get]
func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.UserStats)
}

// UserProgress returns learning-progress milestones.
//
//	@Summary	User progress
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/progress [get]
func (h *Handler) UserProgress(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.UserProgress)
}

// PlantOfTheDay returns the daily featured plant.
//
//	@Summary	Plant of the day
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/plant_of_the_day [get]
func (h *Handler) PlantOfTheDay(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.PlantOfTheDay)
}

// ActivityFeed returns the user's recent activity.
//
//	@Summary	Activity feed
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	errorBody
//	@Router		/api/user/activity_feed [get]
func (h *Handler) ActivityFeed(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.upstream.ActivityFeed)
}
