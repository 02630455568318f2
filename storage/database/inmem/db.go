// Package inmemdb provides map-backed repositories used by tests and as a
// dev fallback when no database is configured.
package inmemdb

import (
	"sync"

	"github.com/jdfgtrompete/explicacoes/core/ledger"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	"github.com/jdfgtrompete/explicacoes/core/student"
	"github.com/jdfgtrompete/explicacoes/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	studentTable struct {
		mutex sync.RWMutex
		table map[string]*student.Student
	}
	sessionTable struct {
		mutex sync.RWMutex
		table map[string]*schedule.Session
	}
	recordTable struct {
		mutex sync.RWMutex
		table map[string]*ledger.WeeklyRecord
	}
	rateTable struct {
		mutex sync.RWMutex
		table map[string]*ledger.StudentRate // keyed by student ID
	}

	DB struct {
		user    *userTable
		student *studentTable
		session *sessionTable
		record  *recordTable
		rate    *rateTable
	}
)

func Open() (*DB, error) {
	return &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		student: &studentTable{table: make(map[string]*student.Student)},
		session: &sessionTable{table: make(map[string]*schedule.Session)},
		record:  &recordTable{table: make(map[string]*ledger.WeeklyRecord)},
		rate:    &rateTable{table: make(map[string]*ledger.StudentRate)},
	}, nil
}
