package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanmind/internal/service"
	"kanmind/internal/storage/sqlite"
)

type registrationRequest struct {
	Fullname         string `json:"fullname"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func sessionView(sess service.Session) gin.H {
	return gin.H{
		"token":    sess.Token,
		"user_id":  sess.User.ID,
		"email":    sess.User.Email,
		"fullname": sess.User.FullName(),
	}
}

// handleRegistration creates a new account and issues its token.
func (s *Server) handleRegistration(c *gin.Context) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	sess, err := s.services.Accounts.Register(c.Request.Context(), service.RegisterInput{
		Fullname:         req.Fullname,
		Email:            req.Email,
		Password:         req.Password,
		RepeatedPassword: req.RepeatedPassword,
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(sess))
}

// handleLogin verifies credentials and returns the persistent token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	sess, err := s.services.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// handleEmailCheck looks a user up by email for member invitation flows.
func (s *Server) handleEmailCheck(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"Email parameter is required."}})
		return
	}

	user, err := s.services.Accounts.CheckEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found."})
			return
		}
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, userView(user))
}

// handleListUsers returns the user directory.
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.services.Accounts.Users(c.Request.Context())
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	c.JSON(http.StatusOK, views)
}
