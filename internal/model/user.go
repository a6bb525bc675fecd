package model

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^(.+)@(.+)$`)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Question     string    `json:"question"`
	AnswerHash   string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
