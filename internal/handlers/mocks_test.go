package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"MEETSYNC_BACK-END/internal/config"
	"MEETSYNC_BACK-END/internal/models"
	"MEETSYNC_BACK-END/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret-key-at-least-32-chars-long",
			AccessTokenTTL: 24 * time.Hour,
		},
	}
}

// fakeUserRepository is an in-memory UserRepository. Create mirrors the
// database unique constraints so duplicate handling can be exercised.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// fakeMeetingRepository is an in-memory MeetingRepository with the same
// organizer scoping the SQL queries apply.
type fakeMeetingRepository struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]models.Meeting
}

func newFakeMeetingRepository() *fakeMeetingRepository {
	return &fakeMeetingRepository{meetings: make(map[uuid.UUID]models.Meeting)}
}

func (f *fakeMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meetings[meeting.ID] = *meeting
	return nil
}

func (f *fakeMeetingRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Meeting, 0)
	for _, m := range f.meetings {
		if m.OrganizerID == organizerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepository) GetForOrganizer(ctx context.Context, id, organizerID uuid.UUID) (*models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok || m.OrganizerID != organizerID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[meeting.ID]
	if !ok || m.OrganizerID != meeting.OrganizerID {
		return repository.ErrNotFound
	}
	f.meetings[meeting.ID] = *meeting
	return nil
}

func (f *fakeMeetingRepository) Delete(ctx context.Context, id, organizerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok || m.OrganizerID != organizerID {
		return repository.ErrNotFound
	}
	delete(f.meetings, id)
	return nil
}
