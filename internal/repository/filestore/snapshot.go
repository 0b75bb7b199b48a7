package filestore

import (
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/normalize"
)

// snapshot is the on-disk document. Password hashes are kept under
// "password", the key the legacy file used for the credential.
type snapshot struct {
	Members  []memberDoc      `json:"members"`
	Workouts []models.Workout `json:"workouts"`
	Records  []models.Record  `json:"records"`
	Users    []userDoc        `json:"users"`
}

type memberDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
}

func (d memberDoc) model() models.Member {
	return models.Member{
		ID:           d.ID,
		Name:         d.Name,
		Gender:       d.Gender,
		DateOfBirth:  d.DateOfBirth,
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}

func memberToDoc(m models.Member) memberDoc {
	return memberDoc{
		ID:          m.ID,
		Name:        m.Name,
		Gender:      m.Gender,
		DateOfBirth: m.DateOfBirth,
		Email:       m.Email,
		Password:    m.PasswordHash,
	}
}

type userDoc struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Name           string `json:"name,omitempty"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:             d.ID,
		Email:          d.Email,
		PasswordHash:   d.Password,
		Role:           d.Role,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
	}
}

func userToDoc(u models.User) userDoc {
	return userDoc{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.PasswordHash,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
	}
}

func (s *snapshot) clone() *snapshot {
	out := &snapshot{
		Members:  append([]memberDoc(nil), s.Members...),
		Records:  append([]models.Record(nil), s.Records...),
		Users:    append([]userDoc(nil), s.Users...),
		Workouts: make([]models.Workout, len(s.Workouts)),
	}
	for i, w := range s.Workouts {
		out.Workouts[i] = w.Clone()
	}
	return out
}

func indexByID[T any](items []T, id func(T) string, want string) int {
	for i, it := range items {
		if id(it) == want {
			return i
		}
	}
	return -1
}

// taken reports whether another item (by id) already holds key once normalized.
func taken[T any](items []T, id, key func(T) string, selfID, want string) bool {
	want = normalize.Text(want)
	for _, it := range items {
		if id(it) != selfID && normalize.Text(key(it)) == want {
			return true
		}
	}
	return false
}
