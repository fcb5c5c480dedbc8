package user

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// Profile carries the role-specific fields of a User. Exactly one of
// StudentProfile or ProfessorProfile backs every user.
type Profile interface {
	Role() Role
	isProfile()
}

type StudentProfile struct {
	StudentCode string
}

func (StudentProfile) Role() Role { return RoleStudent }
func (StudentProfile) isProfile() {}

type ProfessorProfile struct {
	Specialization catalog.CourseID
}

func (ProfessorProfile) Role() Role { return RoleProfessor }
func (ProfessorProfile) isProfile() {}

type User struct {
	ID              string
	Name            string
	Email           string
	Profile         Profile
	AvatarColor     string
	CompletedTopics []string
	IsMuted         bool
}

func (u *User) Role() Role {
	if u == nil || u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

func (u *User) IsProfessor() bool { return u.Role() == RoleProfessor }

// StudentCode is empty for professors.
func (u *User) StudentCode() string {
	if p, ok := u.Profile.(StudentProfile); ok {
		return p.StudentCode
	}
	return ""
}

// Specialization is empty for students.
func (u *User) Specialization() catalog.CourseID {
	if p, ok := u.Profile.(ProfessorProfile); ok {
		return p.Specialization
	}
	return ""
}

// Initial is the uppercase first letter of the name, used by avatars.
func (u *User) Initial() string {
	name := strings.TrimSpace(u.Name)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Clone returns a deep copy so stored records never alias caller state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.CompletedTopics != nil {
		out.CompletedTopics = append([]string(nil), u.CompletedTopics...)
	}
	return &out
}

// AvatarColorFor derives the display tag assigned at creation time.
func AvatarColorFor(role Role, spec catalog.CourseID) string {
	if role == RoleStudent {
		return "bg-slate-500"
	}
	switch spec {
	case catalog.Agronomia:
		return "bg-emerald-600"
	case catalog.Zootecnia:
		return "bg-amber-600"
	case catalog.Veterinaria:
		return "bg-sky-600"
	}
	return "bg-slate-700"
}

// wireUser is the persisted layout: role-specific fields flattened and optional.
type wireUser struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Role            Role             `json:"role"`
	StudentCode     string           `json:"studentCode,omitempty"`
	Specialization  catalog.CourseID `json:"specialization,omitempty"`
	AvatarColor     string           `json:"avatarColor"`
	CompletedTopics []string         `json:"completedTopics"`
	IsMuted         bool             `json:"isMuted,omitempty"`
}

func (u User) MarshalJSON() ([]byte, error) {
	w := wireUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		AvatarColor:     u.AvatarColor,
		CompletedTopics: u.CompletedTopics,
		IsMuted:         u.IsMuted,
	}
	if w.CompletedTopics == nil {
		w.CompletedTopics = []string{}
	}
	switch p := u.Profile.(type) {
	case StudentProfile:
		w.Role = RoleStudent
		w.StudentCode = p.StudentCode
	case ProfessorProfile:
		w.Role = RoleProfessor
		w.Specialization = p.Specialization
	default:
		return nil, fmt.Errorf("user %q has no profile", u.ID)
	}
	return json.Marshal(w)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var w wireUser
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var profile Profile
	switch w.Role {
	case RoleStudent:
		profile = StudentProfile{StudentCode: w.StudentCode}
	case RoleProfessor:
		profile = ProfessorProfile{Specialization: w.Specialization}
	default:
		return fmt.Errorf("user %q: unknown role %q", w.ID, w.Role)
	}
	*u = User{
		ID:              w.ID,
		Name:            w.Name,
		Email:           w.Email,
		Profile:         profile,
		AvatarColor:     w.AvatarColor,
		CompletedTopics: w.CompletedTopics,
		IsMuted:         w.IsMuted,
	}
	return nil
}
