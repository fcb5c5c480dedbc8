package user

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
)

const (
	GuestID          = "guest_user_v1"
	GuestName        = "Estudante"
	GuestEmail       = "estudante@agrovet.app"
	GuestStudentCode = "ALUNO"
	studentCodeLen   = 6
	studentCodeChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func NewStudent(name, email string) *User {
	return &User{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Profile:         StudentProfile{StudentCode: NewStudentCode()},
		AvatarColor:     AvatarColorFor(RoleStudent, ""),
		CompletedTopics: []string{},
	}
}

func NewProfessor(name, email string, spec catalog.CourseID) *User {
	if spec == "" {
		spec = catalog.Agronomia
	}
	return &User{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Profile:         ProfessorProfile{Specialization: spec},
		AvatarColor:     AvatarColorFor(RoleProfessor, spec),
		CompletedTopics: []string{},
	}
}

// Guest is the default student provisioned when the portal starts without a session.
func Guest() *User {
	return &User{
		ID:              GuestID,
		Name:            GuestName,
		Email:           GuestEmail,
		Profile:         StudentProfile{StudentCode: GuestStudentCode},
		AvatarColor:     "bg-emerald-600",
		CompletedTopics: []string{},
	}
}

// NewStudentCode returns six uppercase base-36 characters.
func NewStudentCode() string {
	var b strings.Builder
	b.Grow(studentCodeLen)
	for i := 0; i < studentCodeLen; i++ {
		b.WriteByte(studentCodeChars[rand.IntN(len(studentCodeChars))])
	}
	return b.String()
}
