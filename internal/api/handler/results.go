package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/elecciones-aragon/internal/api/respond"
	"github.com/albapepper/elecciones-aragon/internal/cache"
	"github.com/albapepper/elecciones-aragon/internal/poller"
	"github.com/albapepper/elecciones-aragon/internal/results"
	"github.com/albapepper/elecciones-aragon/internal/textnorm"
	"github.com/albapepper/elecciones-aragon/internal/views"
)

// errNotFound is returned by a build func when the resource is absent from
// an otherwise ready snapshot.
type errNotFound string

func (e errNotFound) Error() string { return string(e) }

// serveSnapshot renders one resource of the current snapshot. The body is
// cached under key for the snapshot's load id, so nothing is re-rendered
// until the poller publishes again.
func (h *Handler) serveSnapshot(w http.ResponseWriter, r *http.Request, key string, build func(*results.Snapshot) (interface{}, error)) {
	snap := h.source.Current()
	if snap == nil {
		respond.WriteNotReady(w)
		return
	}

	data, etag, hit := h.cache.Get(key, snap.LoadID)
	if !hit {
		v, err := build(snap)
		if err != nil {
			var nf errNotFound
			if errors.As(err, &nf) {
				respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", string(nf))
				return
			}
			h.logger.Error("Failed to build response", "key", key, "load_id", snap.LoadID, "error", err)
			respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build response")
			return
		}
		data, err = json.Marshal(v)
		if err != nil {
			h.logger.Error("Failed to encode response", "key", key, "load_id", snap.LoadID, "error", err)
			respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode response")
			return
		}
		etag = h.cache.Set(key, snap.LoadID, data)
	}

	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag, snap.LoadID)
		return
	}
	respond.WriteSnapshot(w, data, etag, snap.LoadID, hit)
}

// GetSnapshot returns the whole normalized model.
// @Summary Current snapshot
// @Description Returns every collection of the latest successful load.
// @Tags results
// @Produce json
// @Success 200 {object} results.Snapshot
// @Failure 503 {object} respond.ErrorResponse
// @Router /snapshot [get]
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "snapshot", func(s *results.Snapshot) (interface{}, error) {
		return s, nil
	})
}

// GetSeats returns seat results ordered by current seats.
// @Summary Seat results
// @Description All parties with 2023 and 2025 seats, change and bloc, ordered by 2025 seats descending.
// @Tags results
// @Produce json
// @Success 200 {array} results.PartySeatResult
// @Failure 503 {object} respond.ErrorResponse
// @Router /seats [get]
func (h *Handler) GetSeats(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "seats", func(s *results.Snapshot) (interface{}, error) {
		return s.Seats, nil
	})
}

// GetDisplayedSeats returns the parties shown in the table and legend.
// @Summary Displayed seat results
// @Description Seat results without parties that hold no seats in either election.
// @Tags results
// @Produce json
// @Success 200 {array} results.PartySeatResult
// @Failure 503 {object} respond.ErrorResponse
// @Router /seats/display [get]
func (h *Handler) GetDisplayedSeats(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "seats/display", func(s *results.Snapshot) (interface{}, error) {
		return views.Displayed(s.Seats), nil
	})
}

// GetVotes returns vote shares.
// @Summary Vote shares
// @Description Vote percentage per party, ordered descending.
// @Tags results
// @Produce json
// @Success 200 {array} results.PartyVoteShare
// @Failure 503 {object} respond.ErrorResponse
// @Router /votes [get]
func (h *Handler) GetVotes(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "votes", func(s *results.Snapshot) (interface{}, error) {
		return s.Votes, nil
	})
}

// GetCountStatus returns counting progress.
// @Summary Count status
// @Description Percentage of the vote counted and the formatted time of the last update.
// @Tags results
// @Produce json
// @Success 200 {object} results.CountStatus
// @Failure 503 {object} respond.ErrorResponse
// @Router /status [get]
func (h *Handler) GetCountStatus(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "status", func(s *results.Snapshot) (interface{}, error) {
		return s.Status, nil
	})
}

// GetMunicipalities lists map data for every municipality.
// @Summary Municipalities
// @Description Leading forces and map fill per municipality, sorted by province and name. Optionally filtered by province (accent and case insensitive).
// @Tags municipalities
// @Produce json
// @Param province query string false "Province name"
// @Success 200 {array} views.MunicipalityMeta
// @Failure 503 {object} respond.ErrorResponse
// @Router /municipalities [get]
func (h *Handler) GetMunicipalities(w http.ResponseWriter, r *http.Request) {
	province := r.URL.Query().Get("province")
	key := "municipalities"
	if province != "" {
		key += "?province=" + textnorm.Normalize(province)
	}
	h.serveSnapshot(w, r, key, func(s *results.Snapshot) (interface{}, error) {
		out := make([]views.MunicipalityMeta, 0, len(s.Municipalities))
		for _, e := range s.Municipalities {
			if province != "" && !textnorm.Equal(e.Province, province) {
				continue
			}
			out = append(out, views.EntryMeta(e))
		}
		sort.Slice(out, func(i, j int) bool {
			pi, pj := textnorm.Normalize(out[i].Province), textnorm.Normalize(out[j].Province)
			if pi != pj {
				return pi < pj
			}
			return textnorm.Normalize(out[i].Name) < textnorm.Normalize(out[j].Name)
		})
		return out, nil
	})
}

// GetMunicipality returns map data for one municipality.
// @Summary Municipality
// @Description Leading forces and map fill for one municipality looked up by province and name, ignoring case and accents.
// @Tags municipalities
// @Produce json
// @Param province path string true "Province name"
// @Param name path string true "Municipality name"
// @Success 200 {object} views.MunicipalityMeta
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /municipalities/{province}/{name} [get]
func (h *Handler) GetMunicipality(w http.ResponseWriter, r *http.Request) {
	province, err1 := url.PathUnescape(chi.URLParam(r, "province"))
	name, err2 := url.PathUnescape(chi.URLParam(r, "name"))
	if err1 != nil || err2 != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PATH", "Malformed municipality path")
		return
	}
	key := "municipality:" + textnorm.MunicipalityKey(name, province)
	h.serveSnapshot(w, r, key, func(s *results.Snapshot) (interface{}, error) {
		e, ok := s.Municipalities.Lookup(name, province)
		if !ok {
			return nil, errNotFound("Municipality " + name + " (" + province + ") not found")
		}
		return views.EntryMeta(e), nil
	})
}

// GetTurnout returns turnout records as published.
// @Summary Turnout records
// @Description Turnout per territory in source order.
// @Tags turnout
// @Produce json
// @Success 200 {array} results.TurnoutRecord
// @Failure 503 {object} respond.ErrorResponse
// @Router /turnout [get]
func (h *Handler) GetTurnout(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "turnout", func(s *results.Snapshot) (interface{}, error) {
		return s.Turnout, nil
	})
}

// GetParticipation returns the participation panel.
// @Summary Participation panel
// @Description Turnout for Aragón and its three provinces compared with 2023, with Spanish-formatted labels.
// @Tags turnout
// @Produce json
// @Success 200 {array} views.ParticipationRow
// @Failure 503 {object} respond.ErrorResponse
// @Router /participation [get]
func (h *Handler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "participation", func(s *results.Snapshot) (interface{}, error) {
		return views.Participation(s.Turnout), nil
	})
}

// GetHemicycle returns the chamber chart layout.
// @Summary Hemicycle layout
// @Description Segment angles, label positions and SVG paths for the seat chart plus the majority marker.
// @Tags results
// @Produce json
// @Success 200 {object} views.HemicycleLayout
// @Failure 503 {object} respond.ErrorResponse
// @Router /hemicycle [get]
func (h *Handler) GetHemicycle(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, "hemicycle", func(s *results.Snapshot) (interface{}, error) {
		return views.Hemicycle(s.Seats, h.cfg.Hemicycle()), nil
	})
}

// Refresh asks the poller for an immediate reload.
// @Summary Request a refresh
// @Description Signals the poller that a client became visible or focused, or that a manual refresh was requested. Returns immediately; the new snapshot is published when the load completes.
// @Tags results
// @Produce json
// @Param trigger query string false "visibility, focus or manual" default(manual)
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	trigger, err := poller.ParseTrigger(r.URL.Query().Get("trigger"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TRIGGER", err.Error())
		return
	}
	queued := h.source.Notify(trigger)
	respond.WriteStatus(w, http.StatusAccepted, map[string]interface{}{
		"trigger": trigger,
		"queued":  queued,
		"poller":  h.source.Status(),
	})
}
