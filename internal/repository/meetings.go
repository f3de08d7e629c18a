package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"MEETSYNC_BACK-END/internal/models"
)

// MeetingRepository defines the interface for meeting data operations.
// Every read and mutation is scoped to the organizer: a meeting owned by
// someone else behaves exactly like a meeting that does not exist.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Meeting, error)
	GetForOrganizer(ctx context.Context, id, organizerID uuid.UUID) (*models.Meeting, error)
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, id, organizerID uuid.UUID) error
}

type meetingRepository struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new MeetingRepository backed by the given pool
func NewMeetingRepository(db *pgxpool.Pool) MeetingRepository {
	return &meetingRepository{db: db}
}

const meetingColumns = "id, title, description, date, start_time, end_time, participants, organizer_id, created_at, updated_at"

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var m models.Meeting
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Date, &m.StartTime, &m.EndTime,
		&m.Participants, &m.OrganizerID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO meetings (id, title, description, date, start_time, end_time, participants, organizer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		meeting.ID, meeting.Title, meeting.Description, meeting.Date, meeting.StartTime,
		meeting.EndTime, meeting.Participants, meeting.OrganizerID, meeting.CreatedAt, meeting.UpdatedAt)
	return err
}

func (r *meetingRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Meeting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+meetingColumns+`
		   FROM meetings
		  WHERE organizer_id = $1
		  ORDER BY date, start_time`, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := make([]models.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	return meetings, rows.Err()
}

func (r *meetingRepository) GetForOrganizer(ctx context.Context, id, organizerID uuid.UUID) (*models.Meeting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1 AND organizer_id = $2`,
		id, organizerID)
	return scanMeeting(row)
}

// Update writes the full record, matching on id AND organizer_id so a
// non-owner update is rejected atomically. organizer_id itself is never set.
func (r *meetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE meetings
		    SET title = $1,
		        description = $2,
		        date = $3,
		        start_time = $4,
		        end_time = $5,
		        participants = $6,
		        updated_at = $7
		  WHERE id = $8 AND organizer_id = $9`,
		meeting.Title, meeting.Description, meeting.Date, meeting.StartTime,
		meeting.EndTime, meeting.Participants, meeting.UpdatedAt,
		meeting.ID, meeting.OrganizerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *meetingRepository) Delete(ctx context.Context, id, organizerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM meetings WHERE id = $1 AND organizer_id = $2`, id, organizerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
