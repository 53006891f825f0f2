package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	SlotRepository       *SlotRepository
	SessionRepository    *SessionRepository
	StudentRepository    *StudentRepository
	InstructorRepository *InstructorRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SlotRepository:       NewSlotRepository(db),
		SessionRepository:    NewSessionRepository(db),
		StudentRepository:    NewStudentRepository(db),
		InstructorRepository: NewInstructorRepository(db),
	}
}
