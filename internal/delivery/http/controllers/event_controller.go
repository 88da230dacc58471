package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	h "gradinvite/internal/delivery/http/helpers"
	"gradinvite/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// VenueRequest is the venue part of an event request body.
type VenueRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Parking *string `json:"parking,omitempty"`
}

// ContactRequest is the contact part of an event request body.
type ContactRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (v VenueRequest) validate(errs []string) []string {
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, "venue.name is required")
	}
	if strings.TrimSpace(v.Address) == "" {
		errs = append(errs, "venue.address is required")
	}
	return errs
}

func (c ContactRequest) validate(errs []string) []string {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, "contact.email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "contact.email is not a valid email address")
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, "contact.phone is required")
	}
	return errs
}

func validatePhotoURLs(urls []string, errs []string) []string {
	for i, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "photo_urls["+strconv.Itoa(i)+"] must be an http(s) URL")
		}
	}
	return errs
}

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Name               string         `json:"name"`
	Degree             string         `json:"degree"`
	Department         string         `json:"department"`
	GraduationAt       *time.Time     `json:"graduation_at"`
	Venue              VenueRequest   `json:"venue"`
	InvitationTemplate *string        `json:"invitation_template,omitempty"`
	Contact            ContactRequest `json:"contact"`
	PhotoURLs          []string       `json:"photo_urls,omitempty"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Degree) == "" {
		errs = append(errs, "degree is required")
	}
	if strings.TrimSpace(c.Department) == "" {
		errs = append(errs, "department is required")
	}
	if c.GraduationAt == nil {
		errs = append(errs, "graduation_at is required")
	}
	errs = c.Venue.validate(errs)
	errs = c.Contact.validate(errs)
	return validatePhotoURLs(c.PhotoURLs, errs)
}

func (c CreateEventRequest) toEvent() *domain.Event {
	return &domain.Event{
		Name:         strings.TrimSpace(c.Name),
		Degree:       strings.TrimSpace(c.Degree),
		Department:   strings.TrimSpace(c.Department),
		GraduationAt: c.GraduationAt.UTC(),
		Venue: domain.Venue{
			Name:    strings.TrimSpace(c.Venue.Name),
			Address: strings.TrimSpace(c.Venue.Address),
			Parking: c.Venue.Parking,
		},
		InvitationTemplate: c.InvitationTemplate,
		Contact: domain.Contact{
			Email: strings.TrimSpace(c.Contact.Email),
			Phone: strings.TrimSpace(c.Contact.Phone),
		},
		PhotoURLs: c.PhotoURLs,
	}
}

// UpdateEventRequest is the request body for PATCH/PUT /api/events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name               *string         `json:"name"`
	Degree             *string         `json:"degree"`
	Department         *string         `json:"department"`
	GraduationAt       *time.Time      `json:"graduation_at"`
	Venue              *VenueRequest   `json:"venue"`
	InvitationTemplate *string         `json:"invitation_template"`
	Contact            *ContactRequest `json:"contact"`
	PhotoURLs          []string        `json:"photo_urls"`
}

// Validate implements Validator. Fields that are present must be valid.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if blank(u.Name) {
		errs = append(errs, "name must not be empty")
	}
	if blank(u.Degree) {
		errs = append(errs, "degree must not be empty")
	}
	if blank(u.Department) {
		errs = append(errs, "department must not be empty")
	}
	if u.Venue != nil {
		errs = u.Venue.validate(errs)
	}
	if u.Contact != nil {
		errs = u.Contact.validate(errs)
	}
	return validatePhotoURLs(u.PhotoURLs, errs)
}

func (u UpdateEventRequest) toPatch() domain.EventPatch {
	p := domain.EventPatch{
		Name:               trimmed(u.Name),
		Degree:             trimmed(u.Degree),
		Department:         trimmed(u.Department),
		InvitationTemplate: u.InvitationTemplate,
		PhotoURLs:          u.PhotoURLs,
	}
	if u.GraduationAt != nil {
		t := u.GraduationAt.UTC()
		p.GraduationAt = &t
	}
	if u.Venue != nil {
		p.Venue = &domain.Venue{
			Name:    strings.TrimSpace(u.Venue.Name),
			Address: strings.TrimSpace(u.Venue.Address),
			Parking: u.Venue.Parking,
		}
	}
	if u.Contact != nil {
		p.Contact = &domain.Contact{
			Email: strings.TrimSpace(u.Contact.Email),
			Phone: strings.TrimSpace(u.Contact.Phone),
		}
	}
	return p
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// EventSuccessResponse is the success response envelope carrying one event.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /api/events.
type EventListSuccessResponse struct {
	Data  []*domain.Event `json:"data"`
	Error *h.APIError     `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a graduation event
// @Description Create a graduation event record. id and timestamps are server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent()
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List graduation events
// @Description Returns every event record, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get a graduation event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update a graduation event
// @Description Partially updates an event. Omitted fields are unchanged.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.toPatch())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}
