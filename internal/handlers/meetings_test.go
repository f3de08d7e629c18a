package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MEETSYNC_BACK-END/internal/dto"
	"MEETSYNC_BACK-END/internal/middleware"
	"MEETSYNC_BACK-END/internal/models"
	"MEETSYNC_BACK-END/internal/utils"
)

// authedRequest builds a request whose context already carries the identity,
// the way AuthMiddleware leaves it.
func authedRequest(method, path, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	ctx := utils.WithUserContext(req.Context(), userID, "tester", "tester@x.com")
	return req.WithContext(ctx)
}

func seedMeeting(t *testing.T, repo *fakeMeetingRepository, organizerID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	m := &models.Meeting{
		ID:           uuid.New(),
		Title:        title,
		Description:  "seeded",
		Date:         time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "09:15",
		Participants: []string{"bob"},
		OrganizerID:  organizerID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m.ID
}

func TestCreateMeeting_OrganizerIsAlwaysCaller(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	mallory := uuid.New()

	// A supplied organizer_id must be ignored; the field is not part of the
	// request shape at all.
	body := `{"title":"Standup","description":"daily","date":"2024-01-10",
		"start_time":"09:00","end_time":"09:15","participants":["bob"],
		"organizer_id":"` + mallory.String() + `"}`
	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodPost, "/api/meetings", body, alice))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.MeetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, alice.String(), resp.OrganizerID)
	assert.Equal(t, "Standup", resp.Title)
	assert.Equal(t, []string{"bob"}, resp.Participants)
}

func TestCreateMeeting_Validation(t *testing.T) {
	h := NewMeetingsHandler(newFakeMeetingRepository())
	alice := uuid.New()

	cases := map[string]string{
		"missing title":      `{"description":"d","date":"2024-01-10","start_time":"09:00","end_time":"10:00"}`,
		"missing times":      `{"title":"t","description":"d","date":"2024-01-10"}`,
		"bad date":           `{"title":"t","description":"d","date":"Jan 10","start_time":"09:00","end_time":"10:00"}`,
		"bad start time":     `{"title":"t","description":"d","date":"2024-01-10","start_time":"9am","end_time":"10:00"}`,
		"end before start":   `{"title":"t","description":"d","date":"2024-01-10","start_time":"10:00","end_time":"09:00"}`,
		"end equal to start": `{"title":"t","description":"d","date":"2024-01-10","start_time":"09:00","end_time":"09:00"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Meetings(rec, authedRequest(http.MethodPost, "/api/meetings", body, alice))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListMeetings_ScopedToOrganizer(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	bob := uuid.New()
	seedMeeting(t, repo, alice, "alice-1")
	seedMeeting(t, repo, alice, "alice-2")
	seedMeeting(t, repo, bob, "bob-1")

	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodGet, "/api/meetings", "", alice))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.MeetingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Meetings, 2)
	for _, m := range resp.Meetings {
		assert.Equal(t, alice.String(), m.OrganizerID)
	}
}

func TestMeetingDetail_NonOwnerLooksLikeMissing(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	bob := uuid.New()
	id := seedMeeting(t, repo, alice, "alice-1")

	nonOwner := httptest.NewRecorder()
	h.Meetings(nonOwner, authedRequest(http.MethodGet, "/api/meetings/"+id.String(), "", bob))

	missing := httptest.NewRecorder()
	h.Meetings(missing, authedRequest(http.MethodGet, "/api/meetings/"+uuid.NewString(), "", bob))

	assert.Equal(t, http.StatusNotFound, nonOwner.Code)
	assert.Equal(t, missing.Code, nonOwner.Code)
	assert.Equal(t, missing.Body.String(), nonOwner.Body.String())
}

func TestUpdateMeeting_PartialFields(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	id := seedMeeting(t, repo, alice, "before")

	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodPut, "/api/meetings/"+id.String(),
		`{"title":"after"}`, alice))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.MeetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "after", resp.Title)
	// Untouched fields keep their values
	assert.Equal(t, "seeded", resp.Description)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, alice.String(), resp.OrganizerID)
}

func TestUpdateMeeting_RejectsInvertedTimesAfterMerge(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	id := seedMeeting(t, repo, alice, "m")

	// New end time earlier than the unchanged start time
	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodPut, "/api/meetings/"+id.String(),
		`{"end_time":"08:00"}`, alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMeeting_NonOwnerIndistinguishableFromMissing(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	bob := uuid.New()
	id := seedMeeting(t, repo, alice, "alice-1")

	nonOwner := httptest.NewRecorder()
	h.Meetings(nonOwner, authedRequest(http.MethodPut, "/api/meetings/"+id.String(),
		`{"title":"hijacked"}`, bob))

	missing := httptest.NewRecorder()
	h.Meetings(missing, authedRequest(http.MethodPut, "/api/meetings/"+uuid.NewString(),
		`{"title":"hijacked"}`, bob))

	assert.Equal(t, http.StatusNotFound, nonOwner.Code)
	assert.Equal(t, missing.Code, nonOwner.Code)
	assert.Equal(t, missing.Body.String(), nonOwner.Body.String())

	// The meeting is untouched
	cur, err := repo.GetForOrganizer(context.Background(), id, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice-1", cur.Title)
}

func TestDeleteMeeting(t *testing.T) {
	repo := newFakeMeetingRepository()
	h := NewMeetingsHandler(repo)
	alice := uuid.New()
	bob := uuid.New()
	id := seedMeeting(t, repo, alice, "alice-1")

	// Non-owner delete returns the same 404 as a nonexistent id
	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodDelete, "/api/meetings/"+id.String(), "", bob))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Owner delete succeeds
	rec = httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodDelete, "/api/meetings/"+id.String(), "", alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Meeting deleted successfully")

	// Second delete is a 404
	rec = httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodDelete, "/api/meetings/"+id.String(), "", alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeetings_InvalidID(t *testing.T) {
	h := NewMeetingsHandler(newFakeMeetingRepository())
	alice := uuid.New()

	rec := httptest.NewRecorder()
	h.Meetings(rec, authedRequest(http.MethodDelete, "/api/meetings/not-a-uuid", "", alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestScenario_AliceAndBob walks the full flow through the auth gate: alice
// registers and creates a meeting, bob registers and cannot delete it.
func TestScenario_AliceAndBob(t *testing.T) {
	cfg := testConfig()
	users := newFakeUserRepository()
	meetings := newFakeMeetingRepository()
	authHandler := NewAuthHandler(users, cfg)
	meetingsHandler := NewMeetingsHandler(meetings)
	gated := middleware.AuthMiddleware(meetingsHandler.Meetings, &cfg.JWT)

	// alice registers
	rec := doRegister(t, authHandler, `{"username":"alice","email":"alice@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var alice dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alice))

	// alice creates a meeting with her token
	req := httptest.NewRequest(http.MethodPost, "/api/meetings", strings.NewReader(
		`{"title":"Standup","description":"daily","date":"2024-01-10","start_time":"09:00","end_time":"09:15","participants":["bob"]}`))
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	rec = httptest.NewRecorder()
	gated(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.MeetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, alice.User.ID, created.OrganizerID)

	// bob registers
	rec = doRegister(t, authHandler, `{"username":"bob","email":"bob@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var bob dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bob))

	// bob cannot delete alice's meeting
	req = httptest.NewRequest(http.MethodDelete, "/api/meetings/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer "+bob.Token)
	rec = httptest.NewRecorder()
	gated(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// alice still sees her meeting; bob sees none
	req = httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	rec = httptest.NewRecorder()
	gated(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var aliceList dto.MeetingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliceList))
	assert.Len(t, aliceList.Meetings, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
	req.Header.Set("Authorization", "Bearer "+bob.Token)
	rec = httptest.NewRecorder()
	gated(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var bobList dto.MeetingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bobList))
	assert.Empty(t, bobList.Meetings)
}
