package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ixcomercio/recognitions/internal/mailer"
	"github.com/ixcomercio/recognitions/internal/metrics"
	"github.com/ixcomercio/recognitions/internal/model"
	"github.com/ixcomercio/recognitions/internal/repository"
)

// fakeRecognitionStore is an in-memory RecognitionStore.
type fakeRecognitionStore struct {
	rows      []*model.Recognition
	createErr error
}

func (f *fakeRecognitionStore) CreateRecognition(ctx context.Context, rec *model.Recognition) (*model.Recognition, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *rec
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.rows = append(f.rows, &stored)
	out := stored
	return &out, nil
}

func (f *fakeRecognitionStore) ListRecognitions(ctx context.Context) ([]*model.Recognition, error) {
	return f.rows, nil
}

func (f *fakeRecognitionStore) GetRecognitionByID(ctx context.Context, id string) (*model.Recognition, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrRecognitionNotFound
}

func (f *fakeRecognitionStore) ListRecognitionsByColaborador(ctx context.Context, nombre string) ([]*model.Recognition, error) {
	var out []*model.Recognition
	for _, r := range f.rows {
		if r.NombreColaborador == nombre {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecognitionStore) ListRecognitionsByCertTypeID(ctx context.Context, certTypeID int64) ([]*model.Recognition, error) {
	var out []*model.Recognition
	for _, r := range f.rows {
		if r.CertTypeID == certTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecognitionStore) ListRecognitionsByTipo(ctx context.Context, tipo string) ([]*model.Recognition, error) {
	var out []*model.Recognition
	for _, r := range f.rows {
		if r.CertTypeTipo == tipo {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecognitionStore) UpdateRecognition(ctx context.Context, id string, rec *model.Recognition) (*model.Recognition, error) {
	for _, r := range f.rows {
		if r.ID == id {
			r.CertTypeID = rec.CertTypeID
			r.Meeting = rec.Meeting
			r.NombreColaborador = rec.NombreColaborador
			r.EmailPersona = rec.EmailPersona
			r.UpdatedAt = time.Now().UTC()
			return r, nil
		}
	}
	return nil, repository.ErrRecognitionNotFound
}

func (f *fakeRecognitionStore) DeleteRecognition(ctx context.Context, id string) (*model.Recognition, error) {
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return r, nil
		}
	}
	return nil, repository.ErrRecognitionNotFound
}

func (f *fakeRecognitionStore) RecognitionStats(ctx context.Context) ([]*model.RecognitionStats, error) {
	return nil, nil
}

// fakeCertTypes resolves cert type ids from a fixed map.
type fakeCertTypes struct {
	byID map[int64]*model.CertType
}

func (f *fakeCertTypes) GetCertTypeByID(ctx context.Context, id int64) (*model.CertType, error) {
	if ct, ok := f.byID[id]; ok {
		return ct, nil
	}
	return nil, repository.ErrCertTypeNotFound
}

// fakePersonas resolves persona emails from a fixed map.
type fakePersonas struct {
	byEmail map[string]*model.Persona
}

func (f *fakePersonas) GetPersonaByEmail(ctx context.Context, email string) (*model.Persona, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, repository.ErrPersonaNotFound
}

// fakeMailer records dispatches and optionally fails.
type fakeMailer struct {
	sent []mailer.RecognitionEmail
	err  error
}

func (f *fakeMailer) SendRecognition(ctx context.Context, email mailer.RecognitionEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func newTestService(store *fakeRecognitionStore, certTypes *fakeCertTypes, personas *fakePersonas, m Mailer, logBuf *bytes.Buffer) *RecognitionService {
	logger := slog.New(slog.NewTextHandler(logBuf, nil))
	return NewRecognitionService(store, certTypes, personas, m, logger, metrics.NewInMemory(), RecognitionOptions{
		VerificationBase: "https://reconocimientos.ixcsvs.online",
	})
}

func kudosCertTypes() *fakeCertTypes {
	return &fakeCertTypes{byID: map[int64]*model.CertType{
		1: {ID: 1, Tipo: "KUDOS", Nombre: "Reconocimiento Kudos"},
	}}
}

func TestCreate_PersistsAndReturnsRecord(t *testing.T) {
	store := &fakeRecognitionStore{}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	result, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Standup",
		NombreColaborador: "Ada",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	rec := result.Recognition
	if rec.ID == "" {
		t.Error("expected a generated id")
	}
	if rec.CertTypeID != 1 || rec.Meeting != "Standup" || rec.NombreColaborador != "Ada" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if len(store.rows) != 1 {
		t.Errorf("expected 1 persisted row, got %d", len(store.rows))
	}
	if result.NotificationErr != nil {
		t.Errorf("no persona referenced, NotificationErr should be nil, got %v", result.NotificationErr)
	}
}

func TestCreate_UnknownCertType_NoRowInserted(t *testing.T) {
	store := &fakeRecognitionStore{}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	_, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        999,
		Meeting:           "Standup",
		NombreColaborador: "Ada",
	})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Message != "certificate type with id 999 not found" {
		t.Errorf("message = %q", nf.Message)
	}
	if len(store.rows) != 0 {
		t.Errorf("expected no inserted rows, got %d", len(store.rows))
	}
}

func TestCreate_UnknownPersona_NoRowInserted(t *testing.T) {
	store := &fakeRecognitionStore{}
	email := "ghost@example.com"
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	_, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Standup",
		NombreColaborador: "Ghost",
		EmailPersona:      &email,
	})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Message != "persona with email ghost@example.com not found" {
		t.Errorf("message = %q", nf.Message)
	}
	if len(store.rows) != 0 {
		t.Errorf("expected no inserted rows, got %d", len(store.rows))
	}
}

func TestCreate_DispatchesNotificationForPersona(t *testing.T) {
	store := &fakeRecognitionStore{}
	email := "ada@example.com"
	personas := &fakePersonas{byEmail: map[string]*model.Persona{
		email: {Email: email, FullName: "Ada Lovelace", Role: "Engineer"},
	}}
	m := &fakeMailer{}
	svc := newTestService(store, kudosCertTypes(), personas, m, &bytes.Buffer{})

	result, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Demo",
		NombreColaborador: "Ada Lovelace",
		EmailPersona:      &email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.NotificationErr != nil {
		t.Errorf("NotificationErr = %v, want nil", result.NotificationErr)
	}

	if len(m.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(m.sent))
	}
	sent := m.sent[0]
	if sent.To != email {
		t.Errorf("To = %q, want %q", sent.To, email)
	}
	if sent.CertType != "Reconocimiento Kudos" {
		t.Errorf("CertType = %q", sent.CertType)
	}
	if sent.UserRole != "Engineer" {
		t.Errorf("UserRole = %q", sent.UserRole)
	}
	wantPrefix := "https://reconocimientos.ixcsvs.online/verificar/"
	if !strings.HasPrefix(sent.CTAURL, wantPrefix) {
		t.Errorf("CTAURL = %q, want prefix %q", sent.CTAURL, wantPrefix)
	}
	if sent.ExpiryDate != "" {
		t.Errorf("ExpiryDate = %q, want empty (no expiry)", sent.ExpiryDate)
	}
}

func TestCreate_SurvivesNotificationFailure(t *testing.T) {
	store := &fakeRecognitionStore{}
	email := "ada@example.com"
	personas := &fakePersonas{byEmail: map[string]*model.Persona{
		email: {Email: email, FullName: "Ada Lovelace", Role: "Engineer"},
	}}
	m := &fakeMailer{err: errors.New("ses unavailable")}
	var logBuf bytes.Buffer
	svc := newTestService(store, kudosCertTypes(), personas, m, &logBuf)

	result, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Demo",
		NombreColaborador: "Ada Lovelace",
		EmailPersona:      &email,
	})
	if err != nil {
		t.Fatalf("Create must not fail on notification error, got %v", err)
	}

	// The persisted record is the guaranteed return value.
	if result.Recognition == nil || result.Recognition.ID == "" {
		t.Fatal("expected the persisted record back")
	}
	if len(store.rows) != 1 {
		t.Errorf("expected the row to stay committed, got %d rows", len(store.rows))
	}

	// The failure is visible only via the result field and the log.
	if result.NotificationErr == nil {
		t.Error("expected NotificationErr to record the dispatch failure")
	}
	logged := logBuf.String()
	if !strings.Contains(logged, "recognition email dispatch failed") {
		t.Errorf("expected dispatch failure in log, got %q", logged)
	}
	if !strings.Contains(logged, email) {
		t.Errorf("expected recipient in log, got %q", logged)
	}
}

func TestCreate_NilMailerSkipsDispatch(t *testing.T) {
	store := &fakeRecognitionStore{}
	email := "ada@example.com"
	personas := &fakePersonas{byEmail: map[string]*model.Persona{
		email: {Email: email, FullName: "Ada Lovelace"},
	}}
	svc := newTestService(store, kudosCertTypes(), personas, nil, &bytes.Buffer{})

	result, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Demo",
		NombreColaborador: "Ada Lovelace",
		EmailPersona:      &email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.NotificationErr != nil {
		t.Errorf("NotificationErr = %v, want nil", result.NotificationErr)
	}
}

func TestGetByID_UnknownIDIsNotFoundEveryTime(t *testing.T) {
	store := &fakeRecognitionStore{}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	for i := 0; i < 3; i++ {
		_, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000999")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("call %d: expected NotFoundError, got %v", i, err)
		}
		if !strings.Contains(nf.Message, "00000000-0000-0000-0000-000000000999") {
			t.Errorf("call %d: message should name the id, got %q", i, nf.Message)
		}
	}
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	store := &fakeRecognitionStore{}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	_, err := svc.Update(context.Background(), "missing", CreateRecognitionInput{CertTypeID: 1})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDelete_ReturnsDeletedRecord(t *testing.T) {
	store := &fakeRecognitionStore{}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	created, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Retro",
		NombreColaborador: "Grace",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.Recognition.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != created.Recognition.ID {
		t.Errorf("deleted id = %s, want %s", deleted.ID, created.Recognition.ID)
	}
	if len(store.rows) != 0 {
		t.Errorf("expected 0 rows after delete, got %d", len(store.rows))
	}
}

func TestCreate_StorageFailureIsGenericError(t *testing.T) {
	store := &fakeRecognitionStore{createErr: errors.New("connection reset")}
	svc := newTestService(store, kudosCertTypes(), &fakePersonas{}, nil, &bytes.Buffer{})

	_, err := svc.Create(context.Background(), CreateRecognitionInput{
		CertTypeID:        1,
		Meeting:           "Standup",
		NombreColaborador: "Ada",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		t.Fatal("storage failure must not be a NotFoundError")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("expected original message preserved, got %q", err.Error())
	}
}
