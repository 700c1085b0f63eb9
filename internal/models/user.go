package models

import "time"

// User represents a row of the users table
type User struct {
	ID        int64     `json:"id" db:"id"`                 // Surrogate primary key, assigned on insert
	Name      string    `json:"name" db:"name"`             // Display name, 2-100 characters
	Email     string    `json:"email" db:"email"`           // Lowercased, unique email
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Set by the database on insert
}

// UserInput is a validated and normalized name/email pair
type UserInput struct {
	Name  string `validate:"required,min=2,max=100"`
	Email string `validate:"required,email,max=120"`
}

// UserPage is one page of a filtered user listing
type UserPage struct {
	Users   []User
	Query   string
	Page    int
	PerPage int
	Total   int
	Pages   int
}

// HasPrev reports whether a page precedes this one
func (p *UserPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a page follows this one
func (p *UserPage) HasNext() bool { return p.Page < p.Pages }

// PrevPage returns the previous page number
func (p *UserPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the next page number
func (p *UserPage) NextPage() int { return p.Page + 1 }
