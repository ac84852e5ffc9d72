package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/ports"
)

type VoteHandler struct {
	voteService   ports.VoteService
	resultService ports.ResultService
}

func NewVoteHandler(voteService ports.VoteService, resultService ports.ResultService) *VoteHandler {
	return &VoteHandler{
		voteService:   voteService,
		resultService: resultService,
	}
}

type voteRequest struct {
	OptionID uuid.UUID `json:"option_id"`
}

type voteResponse struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vote, err := h.voteService.CastVote(r.Context(), ports.CastVoteInput{
		PollID:   pollID,
		OptionID: req.OptionID,
		UserID:   userIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, voteResponse{
		PollID:   vote.PollID.String(),
		OptionID: vote.OptionID.String(),
	})
}

func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	vote, err := h.voteService.GetUserVote(r.Context(), pollID, userIDFromContext(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if vote == nil {
		respondError(w, http.StatusNotFound, "no vote cast on this poll")
		return
	}

	respondJSON(w, http.StatusOK, voteResponse{
		PollID:   vote.PollID.String(),
		OptionID: vote.OptionID.String(),
	})
}

func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	result, err := h.resultService.ComputeResults(r.Context(), pollID, userIDFromContext(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *VoteHandler) GetVoters(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	voters, err := h.voteService.ListVoters(r.Context(), pollID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]userResponse, 0, len(voters))
	for _, voter := range voters {
		out = append(out, toUserResponse(voter))
	}

	respondJSON(w, http.StatusOK, out)
}
