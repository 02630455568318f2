package inmemdb

import (
	"context"
	"sort"

	"github.com/jdfgtrompete/explicacoes/core/ledger"
)

type ledgerRepository struct {
	records *recordTable
	rates   *rateTable
}

func NewLedgerRepository(db *DB) ledger.Repository {
	return &ledgerRepository{records: db.record, rates: db.rate}
}

func (repo *ledgerRepository) CreateRecord(_ context.Context, rec ledger.WeeklyRecord) (ledger.WeeklyRecord, error) {
	repo.records.mutex.Lock()
	defer repo.records.mutex.Unlock()

	repo.records.table[rec.ID] = &rec
	return rec, nil
}

func (repo *ledgerRepository) RecordsByOwnerAndMonth(_ context.Context, ownerID string, month, year int) ([]ledger.WeeklyRecord, error) {
	repo.records.mutex.RLock()
	defer repo.records.mutex.RUnlock()

	records := make([]ledger.WeeklyRecord, 0)
	for _, rec := range repo.records.table {
		if rec.OwnerID == ownerID && rec.Month == month && rec.Year == year {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].WeekNumber != records[j].WeekNumber {
			return records[i].WeekNumber < records[j].WeekNumber
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records, nil
}

func (repo *ledgerRepository) GetRecordByID(_ context.Context, id string) (ledger.WeeklyRecord, error) {
	repo.records.mutex.RLock()
	defer repo.records.mutex.RUnlock()

	if rec, ok := repo.records.table[id]; ok {
		return *rec, nil
	}
	return ledger.WeeklyRecord{}, ledger.ErrNotFound
}

func (repo *ledgerRepository) UpdateRecord(_ context.Context, rec ledger.WeeklyRecord) (ledger.WeeklyRecord, error) {
	repo.records.mutex.Lock()
	defer repo.records.mutex.Unlock()

	if _, ok := repo.records.table[rec.ID]; !ok {
		return ledger.WeeklyRecord{}, ledger.ErrNotFound
	}
	repo.records.table[rec.ID] = &rec
	return rec, nil
}

func (repo *ledgerRepository) DeleteRecordsByStudent(_ context.Context, studentID string) error {
	repo.records.mutex.Lock()
	defer repo.records.mutex.Unlock()

	for id, rec := range repo.records.table {
		if rec.StudentID == studentID {
			delete(repo.records.table, id)
		}
	}
	return nil
}

func (repo *ledgerRepository) UpsertStudentRate(_ context.Context, rate ledger.StudentRate) (ledger.StudentRate, error) {
	repo.rates.mutex.Lock()
	defer repo.rates.mutex.Unlock()

	repo.rates.table[rate.StudentID] = &rate
	return rate, nil
}

func (repo *ledgerRepository) StudentRatesByOwner(_ context.Context, ownerID string) ([]ledger.StudentRate, error) {
	repo.rates.mutex.RLock()
	defer repo.rates.mutex.RUnlock()

	rates := make([]ledger.StudentRate, 0, len(repo.rates.table))
	for _, rate := range repo.rates.table {
		if rate.OwnerID == ownerID {
			rates = append(rates, *rate)
		}
	}
	return rates, nil
}

func (repo *ledgerRepository) GetStudentRate(_ context.Context, studentID string) (ledger.StudentRate, error) {
	repo.rates.mutex.RLock()
	defer repo.rates.mutex.RUnlock()

	if rate, ok := repo.rates.table[studentID]; ok {
		return *rate, nil
	}
	return ledger.StudentRate{}, ledger.ErrRateNotFound
}

func (repo *ledgerRepository) DeleteStudentRate(_ context.Context, studentID string) error {
	repo.rates.mutex.Lock()
	defer repo.rates.mutex.Unlock()
	delete(repo.rates.table, studentID)
	return nil
}
