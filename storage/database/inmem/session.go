package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/jdfgtrompete/explicacoes/core/schedule"
)

type sessionRepository struct {
	db *sessionTable
}

func NewSessionRepository(db *DB) schedule.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(_ context.Context, s schedule.Session) (schedule.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) SessionsByOwnerInRange(_ context.Context, ownerID string, from, to time.Time) ([]schedule.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessions := make([]schedule.Session, 0)
	for _, s := range repo.db.table {
		if s.OwnerID == ownerID && !s.StartsAt.Before(from) && s.StartsAt.Before(to) {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartsAt.Before(sessions[j].StartsAt) })
	return sessions, nil
}

func (repo *sessionRepository) SessionsByParticipant(_ context.Context, studentID string) ([]schedule.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessions := make([]schedule.Session, 0)
	for _, s := range repo.db.table {
		if s.HasParticipant(studentID) {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartsAt.Before(sessions[j].StartsAt) })
	return sessions, nil
}

func (repo *sessionRepository) GetSessionByID(_ context.Context, id string) (schedule.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return schedule.Session{}, schedule.ErrNotFound
}

func (repo *sessionRepository) UpdateSession(_ context.Context, s schedule.Session) (schedule.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[s.ID]; !ok {
		return schedule.Session{}, schedule.ErrNotFound
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) DeleteSessionsByID(_ context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
