package models

type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Gender       string `json:"gender,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type NewMember struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// MemberPatch carries the fields a partial update may change; nil means untouched.
type MemberPatch struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"dateOfBirth"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
}

// Apply merges p over m. Password is left to the caller, which hashes it.
func (p MemberPatch) Apply(m Member) Member {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Gender != nil {
		m.Gender = *p.Gender
	}
	if p.DateOfBirth != nil {
		m.DateOfBirth = *p.DateOfBirth
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	return m
}

type MemberFilter struct {
	Gender string
	Email  string
}
