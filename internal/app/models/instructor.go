package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name" example:"Dr. N. Iyer"`
	Department string `json:"department" db:"department" example:"CSE"`
}
