package domain

import "strings"

type Category struct {
	ID   int64
	Name string
}

func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < 1 || n > 50 {
		return nil, ErrIncorrectParameters("invalid category", "name must be 1..50 chars")
	}
	return &Category{Name: name}, nil
}

type User struct {
	ID    int64
	Name  string
	Email string
}

func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if n := len([]rune(name)); n < 2 || n > 250 {
		return nil, ErrIncorrectParameters("invalid user", "name must be 2..250 chars")
	}
	if n := len([]rune(email)); n < 6 || n > 254 || !strings.Contains(email, "@") {
		return nil, ErrIncorrectParameters("invalid user", "email is malformed")
	}
	return &User{Name: name, Email: email}, nil
}
