package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	h "gradinvite/internal/delivery/http/helpers"
	"gradinvite/internal/domain"
)

// MaxGuestsPerRequest bounds the size of one issuance batch.
const MaxGuestsPerRequest = 500

// IssueInvitationsRequest is the request body for POST /api/invitations.
type IssueInvitationsRequest struct {
	EventID    string   `json:"event_id"`
	GuestNames []string `json:"guest_names"`
}

// Validate implements Validator.
func (r IssueInvitationsRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	switch {
	case len(r.GuestNames) == 0:
		errs = append(errs, "at least one guest name is required")
	case len(r.GuestNames) > MaxGuestsPerRequest:
		errs = append(errs, "at most "+strconv.Itoa(MaxGuestsPerRequest)+" guest names per request")
	}
	for i, name := range r.GuestNames {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "guest_names["+strconv.Itoa(i)+"] must not be empty")
		}
	}
	return errs
}

// IssueInvitationsResponse lists issued invitations in request order.
type IssueInvitationsResponse struct {
	Invitations []*domain.Invitation `json:"invitations"`
}

// IssueInvitationsSuccessResponse is the success envelope for POST /api/invitations (201).
type IssueInvitationsSuccessResponse struct {
	Data  IssueInvitationsResponse `json:"data"`
	Error *h.APIError              `json:"error"`
}

// VerifyInvitationRequest is the request body for POST /api/invitations/verify.
type VerifyInvitationRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (r VerifyInvitationRequest) Validate() []string {
	if strings.TrimSpace(r.Code) == "" {
		return []string{"code is required"}
	}
	return nil
}

// VerifyInvitationResponse is returned for a valid code.
type VerifyInvitationResponse struct {
	EventID   string        `json:"event_id"`
	GuestName string        `json:"guest_name"`
	Event     *domain.Event `json:"event"`
}

// VerifyInvitationSuccessResponse is the success envelope for POST /api/invitations/verify.
type VerifyInvitationSuccessResponse struct {
	Data  VerifyInvitationResponse `json:"data"`
	Error *h.APIError              `json:"error"`
}

// InvitationListSuccessResponse is the success envelope for GET /api/invitations.
type InvitationListSuccessResponse struct {
	Data  []*domain.Invitation `json:"data"`
	Error *h.APIError          `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// IssueInvitations godoc
// @Summary Issue invitation codes
// @Description Issues one unique six digit code per guest name, in request order. If issuance stops part way (storage failure or no free code) the response carries the error together with data.invitations listing the codes already issued.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IssueInvitationsRequest true "Event and guest names"
// @Success 201 {object} controllers.IssueInvitationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (code space exhausted; data.invitations holds the issued prefix)"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable (data.invitations holds the issued prefix)"
// @Router /api/invitations [post]
func (c *InvitationController) IssueInvitations(w http.ResponseWriter, r *http.Request) {
	var req IssueInvitationsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	invs, err := c.Service.IssueInvitations(r.Context(), strings.TrimSpace(req.EventID), req.GuestNames)
	if err != nil {
		var batchErr *domain.BatchError
		if errors.As(err, &batchErr) {
			status, code := statusFor(batchErr.Err)
			c.Logger.ErrorContext(r.Context(), "invitation batch stopped", "event_id", req.EventID,
				"issued", len(batchErr.Issued), "requested", len(req.GuestNames), "err", batchErr.Err)
			h.WriteJSONPartial(w, status, IssueInvitationsResponse{Invitations: batchErr.Issued}, code,
				publicMessage(status, batchErr.Err, "")+": "+strconv.Itoa(len(batchErr.Issued))+" of "+
					strconv.Itoa(len(req.GuestNames))+" invitation(s) issued")
			return
		}
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, IssueInvitationsResponse{Invitations: invs})
}

// VerifyInvitation godoc
// @Summary Verify an invitation code
// @Description Resolves a code to its guest and event record. The code stays valid and can be verified again.
// @Tags invitations
// @Accept json
// @Produce json
// @Param body body VerifyInvitationRequest true "Invitation code"
// @Success 200 {object} controllers.VerifyInvitationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (unknown code)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event removed)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/invitations/verify [post]
func (c *InvitationController) VerifyInvitation(w http.ResponseWriter, r *http.Request) {
	var req VerifyInvitationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, event, err := c.Service.VerifyInvitation(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid invitation code")
			return
		}
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, VerifyInvitationResponse{
		EventID:   inv.EventID,
		GuestName: inv.GuestName,
		Event:     event,
	})
}

// ListInvitations godoc
// @Summary List invitations
// @Description Lists all invitations, or those of one event, in issue order.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Only invitations of this event"
// @Success 200 {object} controllers.InvitationListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))
	invs, err := c.Service.ListInvitations(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, invs)
}
