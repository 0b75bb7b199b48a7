package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/metrics"
	"github.com/baharkarakas/legion/internal/models"
	repo "github.com/baharkarakas/legion/internal/repository"
)

const entityMember = "member"

type MemberService struct {
	base
	hasher Hasher
}

func NewMemberService(store repo.Store, h Hasher, em events.Emitter) *MemberService {
	return &MemberService{base: newBase(store, em), hasher: h}
}

func memberNotFound(id string) func() error {
	return func() error { return apperr.NotFound("Can't find member with the id '%s'", id) }
}

func memberDuplicate(email string) func() error {
	return func() error { return apperr.Duplicate("Member with the email '%s' already exists", email) }
}

// List returns members matching f. Gender and email compare case-insensitively.
func (s *MemberService) List(ctx context.Context, f models.MemberFilter) ([]models.Member, error) {
	all, err := s.store.Members().List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.Member, 0, len(all))
	for _, m := range all {
		if f.Gender != "" && strings.ToLower(m.Gender) != strings.ToLower(f.Gender) {
			continue
		}
		if f.Email != "" && strings.ToLower(m.Email) != strings.ToLower(f.Email) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (models.Member, error) {
	m, err := s.store.Members().GetByID(ctx, id)
	return m, storeErr(err, memberNotFound(id), nil)
}

func (s *MemberService) Create(ctx context.Context, in models.NewMember) (models.Member, error) {
	all, err := s.store.Members().List(ctx)
	if err != nil {
		return models.Member{}, apperr.Store(err)
	}
	m := models.Member{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Gender:      in.Gender,
		DateOfBirth: in.DateOfBirth,
		Email:       in.Email,
	}
	if err := ensureUnique(all, memberID, memberEmail, m.ID, m.Email, memberDuplicate(m.Email)); err != nil {
		return models.Member{}, err
	}
	if in.Password != "" {
		if m.PasswordHash, err = s.hasher.Hash(in.Password); err != nil {
			return models.Member{}, apperr.Store(err)
		}
	}

	created, err := s.store.Members().Create(ctx, m)
	if err != nil {
		return models.Member{}, storeErr(err, nil, memberDuplicate(m.Email))
	}
	s.changed(entityMember, events.ActionCreated, created.ID)
	return created, nil
}

func (s *MemberService) Update(ctx context.Context, id string, p models.MemberPatch) (models.Member, error) {
	cur, err := s.store.Members().GetByID(ctx, id)
	if err != nil {
		return models.Member{}, storeErr(err, memberNotFound(id), nil)
	}
	next := p.Apply(cur)

	if p.Email != nil {
		all, err := s.store.Members().List(ctx)
		if err != nil {
			return models.Member{}, apperr.Store(err)
		}
		if err := ensureUnique(all, memberID, memberEmail, id, next.Email, memberDuplicate(next.Email)); err != nil {
			return models.Member{}, err
		}
	}
	if p.Password != nil {
		if next.PasswordHash, err = s.hasher.Hash(*p.Password); err != nil {
			return models.Member{}, apperr.Store(err)
		}
	}

	updated, err := s.store.Members().Update(ctx, next)
	if err != nil {
		return models.Member{}, storeErr(err, memberNotFound(id), memberDuplicate(next.Email))
	}
	s.changed(entityMember, events.ActionUpdated, id)
	return updated, nil
}

// Delete removes the member and every record that references it in one
// store transaction.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	var removed []string
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if err := tx.Members().Delete(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = tx.Records().DeleteByMember(ctx, id)
		return err
	})
	if err != nil {
		return storeErr(err, memberNotFound(id), nil)
	}

	metrics.CascadeDeletedRecords.Add(float64(len(removed)))
	s.changed(entityMember, events.ActionDeleted, id)
	s.changed(entityRecord, events.ActionDeleted, removed...)
	return nil
}

func memberID(m models.Member) string    { return m.ID }
func memberEmail(m models.Member) string { return m.Email }
