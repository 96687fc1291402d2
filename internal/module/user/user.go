package user

import (
	"errors"
	"io"
	"net/http"

	"techfest-backend/internal/global/jwt"
	"techfest-backend/internal/global/logger"
	"techfest-backend/internal/global/response"

	"github.com/gin-gonic/gin"
)

const accountKey = "account"

const (
	msgEmailTaken         = "An account with this email already exists"
	msgRollNoTaken        = "This roll number is already registered"
	msgRollNoTakenByOther = "This roll number is already registered by another user"
)

// bind decodes the JSON body. An empty body decodes to the zero value so that
// validation can report every missing field.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("bind request failed", "path", c.FullPath(), "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return false
	}
	return true
}

// fail maps service errors to responses. headline names the failed operation.
func fail(c *gin.Context, headline, rollNoTaken string, err error) {
	var invalid *ValidationError
	switch {
	case errors.As(err, &invalid):
		response.Fail(c, response.ErrValidation.WithErrors(invalid.Problems...))
	case errors.Is(err, ErrDuplicateEmail):
		response.Fail(c, response.ErrAlreadyExists.WithMessage(headline).WithErrors(msgEmailTaken))
	case errors.Is(err, ErrDuplicateRollNo):
		response.Fail(c, response.ErrAlreadyExists.WithMessage(headline).WithErrors(rollNoTaken))
	case errors.Is(err, ErrInvalidCredentials):
		response.Fail(c, response.ErrInvalidCredentials)
	case errors.Is(err, ErrTooManyAttempts):
		response.Fail(c, response.ErrTooManyAttempts)
	case errors.Is(err, ErrIncorrectPassword):
		response.Fail(c, response.ErrIncorrectPassword)
	case errors.Is(err, ErrAdminAlreadyExists):
		response.Fail(c, response.ErrAdminExists)
	case errors.Is(err, ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithMessage(headline).WithErrors("User not found"))
	case errors.Is(err, ErrUnauthorized):
		response.Fail(c, response.ErrTokenInvalid)
	default:
		log.Error(headline, "path", c.FullPath(), "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
	}
}

func authenticated(c *gin.Context, status int, message string, result *AuthResult) {
	response.SuccessWithStatus(c, status, message, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// Register handles student self-registration.
func Register(c *gin.Context) {
	var req RegisterInput
	if !bind(c, &req) {
		return
	}

	result, err := svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, "Registration failed", msgRollNoTaken, err)
		return
	}

	log.Info("student registered", "user_id", result.User.ID, "email", result.User.Email)
	authenticated(c, http.StatusCreated, "Student registered successfully", result)
}

func Login(c *gin.Context) {
	var req LoginInput
	if !bind(c, &req) {
		return
	}

	result, err := svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.WithContext(log, c).Warn("login rejected", "email", NormalizeEmail(req.Email))
		}
		fail(c, "Login failed", msgRollNoTaken, err)
		return
	}

	log.Info("user logged in", "user_id", result.User.ID, "role", result.User.Role)
	authenticated(c, http.StatusOK, "Login successful", result)
}

func UpdateProfile(c *gin.Context) {
	actor, ok := currentAccount(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		return
	}
	var req UpdateProfileInput
	if !bind(c, &req) {
		return
	}

	result, err := svc.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		fail(c, "Update failed", msgRollNoTakenByOther, err)
		return
	}

	log.Info("profile updated", "user_id", result.User.ID, "password_changed", req.NewPassword != "")
	authenticated(c, http.StatusOK, "Profile updated successfully", result)
}

func Me(c *gin.Context) {
	actor, ok := currentAccount(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		return
	}
	response.Success(c, "OK", gin.H{"user": svc.GetCurrentUser(actor)})
}

func SetupAdmin(c *gin.Context) {
	result, err := svc.BootstrapAdmin(c.Request.Context())
	if err != nil {
		fail(c, "Setup failed", msgRollNoTaken, err)
		return
	}

	log.Info("admin created", "user_id", result.User.ID, "email", result.User.Email)
	authenticated(c, http.StatusCreated, "Hardcoded admin created successfully", result)
}

func CheckAdmin(c *gin.Context) {
	exists, err := svc.CheckAdminExists(c.Request.Context())
	if err != nil {
		fail(c, "Check admin failed", msgRollNoTaken, err)
		return
	}
	response.Success(c, "OK", gin.H{"adminExists": exists})
}

// loadAccount resolves the token subject to a stored account.
func loadAccount(c *gin.Context) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		c.Abort()
		return
	}
	id, _ := claims.UserID()

	account, err := svc.Resolve(c.Request.Context(), id)
	if err != nil {
		fail(c, "Authentication failed", msgRollNoTaken, err)
		c.Abort()
		return
	}
	c.Set(accountKey, account)
	c.Next()
}

func requireAdmin(c *gin.Context) {
	actor, ok := currentAccount(c)
	if !ok || actor.Role() != RoleAdmin {
		response.Fail(c, response.ErrForbidden)
		c.Abort()
		return
	}
	c.Next()
}

func currentAccount(c *gin.Context) (*Account, bool) {
	v, _ := c.Get(accountKey)
	account, ok := v.(*Account)
	return account, ok
}
