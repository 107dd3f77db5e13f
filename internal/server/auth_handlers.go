package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/UnknownOlympus/chronos/internal/auth"
	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username    string `json:"username"    binding:"required,min=3"`
	Password    string `json:"password"    binding:"required,min=8"`
	FullName    string `json:"full_name"   binding:"required"`
	EmployeeID  string `json:"employee_id" binding:"required"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	IsAdmin     bool   `json:"is_admin"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// registerHandler creates an account together with its employee profile.
// Both rows land in one transaction, so a duplicate username or employee id
// leaves nothing behind.
func (s *Server) registerHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if req.Department != "" && !models.IsValidDepartment(req.Department) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	acc := models.Account{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		IsStaff:      req.IsAdmin,
	}
	emp := models.Employee{
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		Designation: req.Designation,
	}

	startTime := time.Now()
	created, err := s.emrepo.RegisterEmployee(c.Request.Context(), acc, emp)
	s.metrics.DBQueryDuration.WithLabelValues("register_employee").Observe(time.Since(startTime).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		case errors.Is(err, repository.ErrEmployeeIDTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "employee id already taken"})
		default:
			s.log.Error("Failed to register employee", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	s.log.Info("Employee registered", "employee_id", created.EmployeeID, "username", created.Username)
	c.JSON(http.StatusCreated, gin.H{"employee": created})
}

// loginHandler verifies the credentials and mints an access token. Unknown
// usernames, wrong passwords and deactivated accounts all fail the same way.
func (s *Server) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	acc, err := s.emrepo.GetAccountByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			s.log.Error("Failed to look up account", "username", req.Username, "error", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !auth.CheckPassword(acc.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	viewer, err := s.emrepo.GetViewer(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateAccessToken(acc.ID, viewer.IsStaff, viewer.EmployeeCode, s.cfg.Auth.Secret, s.cfg.Auth.TokenTTL)
	if err != nil {
		s.log.Error("Failed to generate access token", "account_id", acc.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "user": viewer})
}

func (s *Server) meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentViewer(c))
}
