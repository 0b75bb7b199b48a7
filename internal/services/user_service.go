package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/normalize"
	repo "github.com/baharkarakas/legion/internal/repository"
)

const entityUser = "user"

type UserService struct {
	base
	hasher Hasher
}

func NewUserService(store repo.Store, h Hasher, em events.Emitter) *UserService {
	return &UserService{base: newBase(store, em), hasher: h}
}

func userNotFound(id string) func() error {
	return func() error { return apperr.NotFound("Can't find user with the id '%s'", id) }
}

func userDuplicate(email string) func() error {
	return func() error { return apperr.Duplicate("User with the email '%s' already exists", email) }
}

func (s *UserService) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.User, 0, len(all))
	for _, u := range all {
		if f.Role != "" && !strings.EqualFold(u.Role, f.Role) {
			continue
		}
		if f.OrganizationID != "" && u.OrganizationID != f.OrganizationID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	return u, storeErr(err, userNotFound(id), nil)
}

// Create validates in, hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, in models.NewUser) (models.User, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, apperr.Validation("%s", err.Error())
	}
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return models.User{}, apperr.Store(err)
	}
	u := models.User{
		ID:             uuid.NewString(),
		Email:          in.Email,
		Role:           in.Role,
		OrganizationID: in.OrganizationID,
		Name:           in.Name,
	}
	if err := ensureUnique(all, userID, userEmail, u.ID, u.Email, userDuplicate(u.Email)); err != nil {
		return models.User{}, err
	}
	if u.PasswordHash, err = s.hasher.Hash(in.Password); err != nil {
		return models.User{}, apperr.Store(err)
	}

	created, err := s.store.Users().Create(ctx, u)
	if err != nil {
		return models.User{}, storeErr(err, nil, userDuplicate(u.Email))
	}
	s.changed(entityUser, events.ActionCreated, created.ID)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, p models.UserPatch) (models.User, error) {
	cur, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return models.User{}, storeErr(err, userNotFound(id), nil)
	}
	next := p.Apply(cur)
	if p.Role != nil && !models.ValidRole(next.Role) {
		return models.User{}, apperr.Validation("role must be one of 'coach', 'athlete', 'admin'")
	}

	if p.Email != nil {
		all, err := s.store.Users().List(ctx)
		if err != nil {
			return models.User{}, apperr.Store(err)
		}
		if err := ensureUnique(all, userID, userEmail, id, next.Email, userDuplicate(next.Email)); err != nil {
			return models.User{}, err
		}
	}
	if p.Password != nil {
		if next.PasswordHash, err = s.hasher.Hash(*p.Password); err != nil {
			return models.User{}, apperr.Store(err)
		}
	}

	updated, err := s.store.Users().Update(ctx, next)
	if err != nil {
		return models.User{}, storeErr(err, userNotFound(id), userDuplicate(next.Email))
	}
	s.changed(entityUser, events.ActionUpdated, id)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.store.Users().Delete(ctx, id); err != nil {
		return storeErr(err, userNotFound(id), nil)
	}
	s.changed(entityUser, events.ActionDeleted, id)
	return nil
}

// byEmail finds a user by normalized email.
func (s *UserService) byEmail(ctx context.Context, email string) (models.User, bool, error) {
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return models.User{}, false, apperr.Store(err)
	}
	for _, u := range all {
		if normalize.Equal(u.Email, email) {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func userID(u models.User) string    { return u.ID }
func userEmail(u models.User) string { return u.Email }
