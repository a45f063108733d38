package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"food-ordering-api/mailer"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/otp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// AuthHandler owns signup, OTP verification and login. The code store and
// mailer come in through the constructor so tests can substitute fakes.
type AuthHandler struct {
	db     *gorm.DB
	codes  otp.Store
	mail   mailer.Mailer
	secret []byte
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, codes otp.Store, mail mailer.Mailer, secret []byte, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, codes: codes, mail: mail, secret: secret, log: log}
}

// Email and phone fields carry no binding rules beyond presence: syntax is
// checked after normalization, so a padded "  ADA@X.COM " is trimmed and
// lower-cased before anything judges it.
type SignupRequest struct {
	Name         string `json:"name" binding:"required,min=2"`
	Password     string `json:"password" binding:"required,min=6"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return validate.Var(email, "email") == nil
}

// Signup creates a new user account. Accounts with an email start unverified
// and receive a 6-digit code; phone-only accounts are verified at creation.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Either email or phone must be provided"})
		return
	}
	if email != "" && !validEmail(email) {
		fieldError(c, "Email", "email")
		return
	}
	if phone != "" && len(phone) < 10 {
		fieldError(c, "Phone", "min")
		return
	}

	if email != "" {
		var existing models.User
		if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
	}
	if phone != "" {
		var existing models.User
		if err := h.db.Where("phone = ?", phone).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "Phone already registered"})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		PasswordHash: string(hash),
		ReferralCode: req.ReferralCode,
		IsVerified:   email == "",
		Role:         models.RoleCustomer,
	}
	if email != "" {
		user.Email = &email
	}
	if phone != "" {
		user.Phone = &phone
	}

	if err := h.db.Create(&user).Error; err != nil {
		h.log.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	if email != "" {
		code := otp.GenerateCode()
		if err := h.codes.Set(c.Request.Context(), email, code); err != nil {
			h.log.Error("failed to store verification code", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue verification code"})
			return
		}
		if err := h.mail.SendVerificationCode(email, code); err != nil {
			h.log.Error("failed to send verification email", zap.String("email", email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification email"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user,
	})
}

// VerifyOTP checks a pending code and marks the account verified. Codes are
// single use; a matching code is deleted before responding.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !otpPattern.MatchString(req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP must be a 6-digit code"})
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		fieldError(c, "Email", "email")
		return
	}
	stored, err := h.codes.Get(c.Request.Context(), email)
	if errors.Is(err, otp.ErrCodeNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Verification code expired or not found"})
		return
	}
	if err != nil {
		h.log.Error("failed to read verification code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if stored != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification code"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := h.db.Model(&user).Update("is_verified", true).Error; err != nil {
		h.log.Error("failed to mark user verified", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	user.IsVerified = true

	if err := h.codes.Delete(c.Request.Context(), email); err != nil {
		h.log.Warn("failed to delete used verification code", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account verified",
		"user":    user,
	})
}

// ResendOTP issues a fresh code for an unverified account, replacing any
// pending one.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		fieldError(c, "Email", "email")
		return
	}
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if user.Email == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User has no email on file"})
		return
	}
	if user.IsVerified {
		c.JSON(http.StatusConflict, gin.H{"message": "Account is already verified"})
		return
	}

	code := otp.GenerateCode()
	if err := h.codes.Set(c.Request.Context(), email, code); err != nil {
		h.log.Error("failed to store verification code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue verification code"})
		return
	}
	if err := h.mail.SendVerificationCode(email, code); err != nil {
		h.log.Error("failed to send verification email", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code resent"})
}

// Login authenticates by email or phone and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Either email or phone must be provided"})
		return
	}
	if email != "" && !validEmail(email) {
		fieldError(c, "Email", "email")
		return
	}

	var user models.User
	var err error
	if email != "" {
		err = h.db.Where("email = ?", email).First(&user).Error
	} else {
		err = h.db.Where("phone = ?", phone).First(&user).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if user.Email != nil && !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is not verified"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if len(h.secret) == 0 {
		h.log.Error("JWT secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server configuration error"})
		return
	}

	token, err := middleware.GenerateToken(&user, h.secret)
	if err != nil {
		h.log.Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated caller's account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
