package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/pba"
)

type entryKey struct {
	date   string
	typeID id.ID
}

// memStore is an in-memory Repository and tx.Manager.
// A failed transaction restores the rows it started with.
type memStore struct {
	rows      map[entryKey]Entry
	codes     map[id.ID]string
	failOn    id.ID
	danglesOn id.ID
	locked    []entryKey
	getErr    error
	txCount   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		rows:  make(map[entryKey]Entry),
		codes: make(map[id.ID]string),
	}
}

func (m *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txCount++
	snapshot := make(map[entryKey]Entry, len(m.rows))
	for k, v := range m.rows {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		m.rows = snapshot
		m.rollbacks++
		return err
	}
	return nil
}

func (m *memStore) GetEntry(ctx context.Context, date types.Date, typeID id.ID) (*Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.rows[entryKey{date.String(), typeID}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) GetEntryForUpdate(ctx context.Context, date types.Date, typeID id.ID) (*Entry, error) {
	m.locked = append(m.locked, entryKey{date.String(), typeID})
	return m.GetEntry(ctx, date, typeID)
}

func (m *memStore) Upsert(ctx context.Context, e *Entry) error {
	if e.ProductTypeID == m.failOn {
		return errors.New("disk full")
	}
	if e.ProductTypeID == m.danglesOn {
		return fmt.Errorf("upsert daily stock: %w", ErrUnknownProductType)
	}
	e.Recompute()
	m.rows[entryKey{e.Date.String(), e.ProductTypeID}] = *e
	return nil
}

func (m *memStore) ListByDate(ctx context.Context, date types.Date) ([]EntryView, error) {
	var out []EntryView
	for k, e := range m.rows {
		if k.date == date.String() {
			out = append(out, EntryView{Entry: e, Code: m.codes[k.typeID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memStore) Lookup(ctx context.Context, ids []id.ID) (map[id.ID]pba.ProductType, error) {
	out := make(map[id.ID]pba.ProductType)
	for _, i := range ids {
		if code, ok := m.codes[i]; ok {
			out[i] = pba.ProductType{ID: i, Code: code}
		}
	}
	return out, nil
}

func (m *memStore) addType(code string) id.ID {
	typeID := id.New()
	m.codes[typeID] = code
	return typeID
}

func (m *memStore) entry(date string, typeID id.ID) (Entry, bool) {
	e, ok := m.rows[entryKey{date, typeID}]
	return e, ok
}
