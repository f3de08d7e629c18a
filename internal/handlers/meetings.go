package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"MEETSYNC_BACK-END/internal/dto"
	"MEETSYNC_BACK-END/internal/models"
	"MEETSYNC_BACK-END/internal/repository"
	"MEETSYNC_BACK-END/internal/utils"
)

// MeetingsHandler manages meeting-related endpoints. All operations are scoped
// to the authenticated organizer; meetings owned by other users are
// indistinguishable from nonexistent ones.
type MeetingsHandler struct {
	meetings repository.MeetingRepository
}

// NewMeetingsHandler creates a new MeetingsHandler
func NewMeetingsHandler(meetings repository.MeetingRepository) *MeetingsHandler {
	return &MeetingsHandler{meetings: meetings}
}

// Meetings dispatches by HTTP method for /api/meetings
func (h *MeetingsHandler) Meetings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateMeeting(w, r)
	case http.MethodGet:
		// If path has an ID suffix, treat as detail
		if strings.HasPrefix(r.URL.Path, "/api/meetings/") && len(r.URL.Path) > len("/api/meetings/") {
			h.MeetingDetail(w, r)
			return
		}
		h.ListMeetings(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateMeeting(w, r)
	case http.MethodDelete:
		h.DeleteMeeting(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func toMeetingResponse(m *models.Meeting) dto.MeetingResponse {
	participants := m.Participants
	if participants == nil {
		participants = []string{}
	}
	return dto.MeetingResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Description:  m.Description,
		Date:         utils.FormatDate(m.Date),
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Participants: participants,
		OrganizerID:  m.OrganizerID.String(),
		CreatedAt:    utils.FormatTimestamp(m.CreatedAt),
		UpdatedAt:    utils.FormatTimestamp(m.UpdatedAt),
	}
}

// validateTimeRange checks both HH:MM values and requires the end to come
// after the start.
func validateTimeRange(startTime, endTime string) error {
	start, err := utils.ParseTimeOfDay(startTime)
	if err != nil {
		return errors.New("start_time must be HH:MM")
	}
	end, err := utils.ParseTimeOfDay(endTime)
	if err != nil {
		return errors.New("end_time must be HH:MM")
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}
	return nil
}

func meetingIDFromPath(path string) (uuid.UUID, error) {
	idStr := strings.TrimPrefix(path, "/api/meetings/")
	return uuid.Parse(idStr)
}

// CreateMeeting handles POST /api/meetings
// @Summary Create a new meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateMeetingRequest true "Meeting payload"
// @Success 201 {object} dto.MeetingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/meetings [post]
func (h *MeetingsHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateMeetingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", utils.ValidationMessage(err))
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
		return
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	participants := req.Participants
	if participants == nil {
		participants = []string{}
	}

	now := time.Now()
	// The organizer is always the authenticated caller; the request body has
	// no organizer field, so a client cannot assign one.
	meeting := &models.Meeting{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: participants,
		OrganizerID:  userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.meetings.Create(r.Context(), meeting); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toMeetingResponse(meeting))
}

// ListMeetings handles GET /api/meetings
// @Summary List the caller's meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeetingListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/meetings [get]
func (h *MeetingsHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	meetings, err := h.meetings.ListByOrganizer(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	items := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		items = append(items, toMeetingResponse(&meetings[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MeetingListResponse{Meetings: items})
}

// MeetingDetail handles GET /api/meetings/{meeting_id}
// @Summary Get one of the caller's meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/meetings/{meeting_id} [get]
func (h *MeetingsHandler) MeetingDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	meetingID, err := meetingIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid meeting id", "meeting_id must be UUID")
		return
	}

	meeting, err := h.meetings.GetForOrganizer(r.Context(), meetingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Meeting not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toMeetingResponse(meeting))
}

// UpdateMeeting handles PUT/PATCH /api/meetings/{meeting_id}
// @Summary Update a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meeting_id path string true "Meeting ID"
// @Param payload body dto.UpdateMeetingRequest true "Update payload"
// @Success 200 {object} dto.MeetingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/meetings/{meeting_id} [put]
func (h *MeetingsHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	meetingID, err := meetingIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid meeting id", "meeting_id must be UUID")
		return
	}

	// The organizer-scoped load makes a non-owner request look exactly like a
	// missing meeting.
	cur, err := h.meetings.GetForOrganizer(r.Context(), meetingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Meeting not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	var req dto.UpdateMeetingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Apply only the allow-listed fields, defaulting to current values
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title cannot be empty")
			return
		}
		cur.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "description cannot be empty")
			return
		}
		cur.Description = description
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
			return
		}
		cur.Date = date
	}
	if req.StartTime != nil {
		cur.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		cur.EndTime = *req.EndTime
	}
	if err := validateTimeRange(cur.StartTime, cur.EndTime); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}
	if req.Participants != nil {
		cur.Participants = *req.Participants
	}

	cur.UpdatedAt = time.Now()
	if err := h.meetings.Update(r.Context(), cur); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Meeting not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toMeetingResponse(cur))
}

// DeleteMeeting handles DELETE /api/meetings/{meeting_id}
// @Summary Delete a meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/meetings/{meeting_id} [delete]
func (h *MeetingsHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	meetingID, err := meetingIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid meeting id", "meeting_id must be UUID")
		return
	}

	if err := h.meetings.Delete(r.Context(), meetingID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Meeting not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Meeting deleted successfully"})
}
