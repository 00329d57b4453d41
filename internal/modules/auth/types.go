package auth

import (
	"errors"
	"time"
)

var (
	errUserNotFound    = errors.New("user not found")
	errWrongPassword   = errors.New("wrong password")
	errOwnerRegistered = errors.New("owner already registered")
)

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
}

type CreateTokenDTO struct {
	Name    string     `json:"name" binding:"required"`
	Expired *time.Time `json:"expired"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Token   string     `json:"token"`
	Expired *time.Time `json:"expired,omitempty"`
	Created time.Time  `json:"created"`
}

type sessionResponse struct {
	ID       string    `json:"id"`
	IP       string    `json:"ip"`
	UA       string    `json:"ua"`
	Current  bool      `json:"current"`
	Created  time.Time `json:"created"`
	LastSeen time.Time `json:"last_seen"`
}
