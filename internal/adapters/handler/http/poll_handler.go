package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type PollHandler struct {
	pollService ports.PollService
	voteService ports.VoteService
}

func NewPollHandler(pollService ports.PollService, voteService ports.VoteService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
		voteService: voteService,
	}
}

type createPollRequest struct {
	Question  string   `json:"question"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Options   []string `json:"options"`
}

type pollResponse struct {
	ID           string           `json:"id"`
	Question     string           `json:"question"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	CreatorID    string           `json:"creator_id"`
	Options      []optionResponse `json:"options"`
	UserHasVoted bool             `json:"user_has_voted"`
}

type optionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	UserVoted bool   `json:"user_voted"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_date: "+err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end_date: "+err.Error())
		return
	}

	poll, err := h.pollService.Create(r.Context(), ports.CreatePollInput{
		Question:  req.Question,
		StartDate: startDate,
		EndDate:   endDate,
		Options:   req.Options,
		CreatorID: userIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.toPollResponse(r, poll))
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	poll, err := h.pollService.GetPoll(r.Context(), pollID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toPollResponse(r, poll))
}

func (h *PollHandler) GetActivePolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollService.ActivePolls(r.Context(), r.URL.Query().Get("question"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toPollResponses(r, polls))
}

func (h *PollHandler) GetClosedPolls(w http.ResponseWriter, r *http.Request) {
	input := ports.ListClosedPollsInput{
		QuestionFilter: r.URL.Query().Get("question"),
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start_date: "+err.Error())
			return
		}
		input.EndedFrom = &from
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid end_date: "+err.Error())
			return
		}
		input.EndedTo = &to
	}

	polls, err := h.pollService.ClosedPolls(r.Context(), input)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toPollResponses(r, polls))
}

func (h *PollHandler) GetUserPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollService.UserPolls(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toPollResponses(r, polls))
}

func (h *PollHandler) toPollResponses(r *http.Request, polls []*domain.Poll) []pollResponse {
	out := make([]pollResponse, 0, len(polls))
	for _, poll := range polls {
		out = append(out, h.toPollResponse(r, poll))
	}
	return out
}

// toPollResponse decorates the poll with the caller's vote state. A lookup
// failure degrades to "not voted" rather than failing the listing.
func (h *PollHandler) toPollResponse(r *http.Request, poll *domain.Poll) pollResponse {
	resp := pollResponse{
		ID:        poll.ID.String(),
		Question:  poll.Question,
		StartDate: poll.StartDate,
		EndDate:   poll.EndDate,
		CreatorID: poll.CreatorID,
		Options:   make([]optionResponse, 0, len(poll.Options)),
	}

	userVote, err := h.voteService.GetUserVote(r.Context(), poll.ID, userIDFromContext(r.Context()))
	if err != nil {
		userVote = nil
	}
	resp.UserHasVoted = userVote != nil

	for _, opt := range poll.Options {
		resp.Options = append(resp.Options, optionResponse{
			ID:        opt.ID.String(),
			Text:      opt.Text,
			UserVoted: userVote != nil && userVote.OptionID == opt.ID,
		})
	}

	return resp
}

func pollIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// parseDate accepts a date-only value, interpreted as midnight UTC, or a
// full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", value)
}
