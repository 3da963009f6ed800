package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dental-center-management/internal/domain/entity"
	"dental-center-management/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EntityStore holds the patient and incident collections in memory and
// writes a full JSON snapshot of the affected collection(s) to storage on
// every mutation. Collection order is insertion order; no sorting is
// applied here.
//
// Mutations on an id absent from the target collection are silent no-ops;
// the returned bool reports whether a target was found, without changing
// that behavior.
type EntityStore struct {
	kv  storage.Store
	log *logrus.Logger

	mu        sync.RWMutex
	patients  []entity.Patient
	incidents []entity.Incident
}

func NewEntityStore(kv storage.Store, log *logrus.Logger) *EntityStore {
	return &EntityStore{kv: kv, log: log}
}

// Initialize seeds both collections from sample data if no persisted copy
// exists, otherwise loads the persisted copies. Idempotent.
func (s *EntityStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	patients, err := loadOrSeed(ctx, s.kv, storage.KeyPatients, samplePatients)
	if err != nil {
		return err
	}
	incidents, err := loadOrSeed(ctx, s.kv, storage.KeyIncidents, sampleIncidents)
	if err != nil {
		return err
	}

	s.patients = patients
	s.incidents = incidents
	s.log.WithFields(logrus.Fields{
		"patients":  len(patients),
		"incidents": len(incidents),
	}).Info("Entity store initialized")
	return nil
}

func loadOrSeed[T any](ctx context.Context, kv storage.Store, key string, seed func() []T) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		seeded := seed()
		payload, merr := json.Marshal(seeded)
		if merr != nil {
			return nil, fmt.Errorf("marshal %s seed: %w", key, merr)
		}
		if serr := kv.Set(ctx, key, payload); serr != nil {
			return nil, fmt.Errorf("seed %s: %w", key, serr)
		}
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var loaded []T
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return loaded, nil
}

// Patients returns a copy of the patient collection in insertion order.
func (s *EntityStore) Patients() []entity.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// Incidents returns a copy of the incident collection in insertion order.
func (s *EntityStore) Incidents() []entity.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out
}

// FindPatient looks up a patient by id.
func (s *EntityStore) FindPatient(id string) (entity.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.patients {
		if s.patients[i].ID == id {
			return s.patients[i], true
		}
	}
	return entity.Patient{}, false
}

// FindIncident looks up an incident by id.
func (s *EntityStore) FindIncident(id string) (entity.Incident, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			return s.incidents[i], true
		}
	}
	return entity.Incident{}, false
}

// AddPatient assigns a fresh id, appends the patient, and persists the
// collection. Returns the stored record.
func (s *EntityStore) AddPatient(ctx context.Context, fields entity.Patient) (entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields.ID = uuid.NewString()
	updated := append(append([]entity.Patient{}, s.patients...), fields)
	if err := s.persist(ctx, storage.KeyPatients, updated); err != nil {
		return entity.Patient{}, err
	}
	s.patients = updated
	return fields, nil
}

// UpdatePatient merges the patch into the patient with the given id and
// persists the collection. Reports false when the id is absent.
func (s *EntityStore) UpdatePatient(ctx context.Context, id string, patch entity.PatientPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]entity.Patient, len(s.patients))
	copy(updated, s.patients)

	found := false
	for i := range updated {
		if updated[i].ID == id {
			patch.Apply(&updated[i])
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := s.persist(ctx, storage.KeyPatients, updated); err != nil {
		return false, err
	}
	s.patients = updated
	return true, nil
}

// DeletePatient removes the patient and cascades to every incident whose
// patientId matches. Both collections are persisted before the in-memory
// state is swapped, so callers observe a single state transition. Reports
// false when the id is absent.
func (s *EntityStore) DeletePatient(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patients := make([]entity.Patient, 0, len(s.patients))
	found := false
	for _, p := range s.patients {
		if p.ID == id {
			found = true
			continue
		}
		patients = append(patients, p)
	}
	if !found {
		return false, nil
	}

	incidents := make([]entity.Incident, 0, len(s.incidents))
	removed := 0
	for _, in := range s.incidents {
		if in.PatientID == id {
			removed++
			continue
		}
		incidents = append(incidents, in)
	}

	if err := s.persist(ctx, storage.KeyPatients, patients); err != nil {
		return false, err
	}
	if err := s.persist(ctx, storage.KeyIncidents, incidents); err != nil {
		return false, err
	}

	s.patients = patients
	s.incidents = incidents
	s.log.WithFields(logrus.Fields{
		"patient":           id,
		"incidents_removed": removed,
	}).Info("Deleted patient with cascade")
	return true, nil
}

// AddIncident assigns a fresh id, defaults status to Pending and files to
// an empty sequence, appends, and persists. A patientId that references
// no live patient is accepted as-is (matching the system being
// reimplemented) and only logged.
func (s *EntityStore) AddIncident(ctx context.Context, fields entity.Incident) (entity.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields.ID = uuid.NewString()
	if fields.Status == "" {
		fields.Status = entity.StatusPending
	}
	if fields.Files == nil {
		fields.Files = []entity.FileAttachment{}
	}
	if !s.patientExists(fields.PatientID) {
		s.log.WithField("patientId", fields.PatientID).Warn("Incident created for unknown patient")
	}

	updated := append(append([]entity.Incident{}, s.incidents...), fields)
	if err := s.persist(ctx, storage.KeyIncidents, updated); err != nil {
		return entity.Incident{}, err
	}
	s.incidents = updated
	return fields, nil
}

// UpdateIncident merges the patch into the incident with the given id and
// persists the collection. Reports false when the id is absent.
func (s *EntityStore) UpdateIncident(ctx context.Context, id string, patch entity.IncidentPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]entity.Incident, len(s.incidents))
	copy(updated, s.incidents)

	found := false
	for i := range updated {
		if updated[i].ID == id {
			patch.Apply(&updated[i])
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := s.persist(ctx, storage.KeyIncidents, updated); err != nil {
		return false, err
	}
	s.incidents = updated
	return true, nil
}

// DeleteIncident removes the incident with the given id and persists the
// collection. Reports false when the id is absent.
func (s *EntityStore) DeleteIncident(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]entity.Incident, 0, len(s.incidents))
	found := false
	for _, in := range s.incidents {
		if in.ID == id {
			found = true
			continue
		}
		updated = append(updated, in)
	}
	if !found {
		return false, nil
	}

	if err := s.persist(ctx, storage.KeyIncidents, updated); err != nil {
		return false, err
	}
	s.incidents = updated
	return true, nil
}

func (s *EntityStore) patientExists(id string) bool {
	for i := range s.patients {
		if s.patients[i].ID == id {
			return true
		}
	}
	return false
}

func (s *EntityStore) persist(ctx context.Context, key string, collection any) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
