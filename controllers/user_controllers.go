package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	Store *repository.Store
}

func NewUserController(store *repository.Store) *UserController {
	return &UserController{Store: store}
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{Name: u.Name, Email: u.Email, Role: u.Role}
}

// CreateUser hashes the password and stores the account under its lower-cased email.
func CreateUser(ctx context.Context, users repository.Repository[models.User], name, email, password, role string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashed),
		Role:     role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a staff account. An admin account can only be registered while no
// user exists yet.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStaff
	}

	if req.Role == models.RoleAdmin {
		users, err := uc.Store.Users.FindAll(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if len(users) > 0 {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	user, err := CreateUser(c.Request.Context(), uc.Store.Users, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
			return
		}
		respondStoreError(c, err)
		return
	}

	utils.InfoLogger.WithField("email", user.Email).WithField("role", user.Role).Info("new user registered")
	utils.RespondJSON(c, http.StatusCreated, "User registered", toUserResponse(*user))
}

// Login -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.Store.Users.FindByKey(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
			return
		}
		respondStoreError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user.Email, user.Role)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.InfoLogger.WithField("email", user.Email).Info("login successful")
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
	})
}

// Logout revokes the token the request was made with.
func (uc *UserController) Logout(c *gin.Context) {
	claims, ok := c.MustGet(middlewares.ContextClaims).(*utils.CustomClaims)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no session to log out"))
		return
	}
	utils.BlacklistToken(claims)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	email, _ := middlewares.CurrentUser(c)
	user, err := uc.Store.Users.FindByKey(c.Request.Context(), email)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", toUserResponse(*user))
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Store.Users.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", out)
}
