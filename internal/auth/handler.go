package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/pagination"
	"github.com/community-platform/backend/pkg/response"
	"github.com/community-platform/backend/pkg/utils"
)

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	College  string `form:"college" json:"college"`
	Phone    string `form:"phone" json:"phone"`
}

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token   string            `json:"token"`
	IsAdmin bool              `json:"is_admin"`
	User    *models.UserPublic `json:"user,omitempty"`
}

// AdminCredentials are the env-provided admin login credentials.
type AdminCredentials struct {
	Username string
	Password string
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	admin  AdminCredentials
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, admin AdminCredentials, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, admin: admin, logger: logger}
}

// LoginPage handles GET /login. The page itself is rendered client-side; this
// echoes any flash message attached by a guard redirect.
func (h *Handler) LoginPage(c *gin.Context) {
	response.OK(c, gin.H{"flash": c.Query("flash"), "next": c.Query("next")})
}

// RegisterPage handles GET /register.
func (h *Handler) RegisterPage(c *gin.Context) {
	response.OK(c, gin.H{"flash": c.Query("flash")})
}

// Login handles POST /login. Admin env credentials are checked before the
// users collection; both produce a signed token and a session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	email := utils.Sanitize(strings.TrimSpace(req.Email))

	if email == h.admin.Username && req.Password == h.admin.Password {
		token, err := h.jwt.Generate(AdminUserID, "Admin", models.RoleAdmin)
		if err != nil {
			response.Internal(c, "failed to generate token")
			return
		}
		h.setSessionCookie(c, token)
		response.OK(c, TokenResponse{Token: token, IsAdmin: true})
		return
	}

	user, err := h.repo.GetCredentialsByEmail(c.Request.Context(), email)
	if err != nil || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID.Hex(), user.Name, models.RoleUser)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	h.setSessionCookie(c, token)
	pub := user.ToPublic()
	response.OK(c, TokenResponse{Token: token, User: &pub})
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	email := utils.Sanitize(strings.ToLower(strings.TrimSpace(req.Email)))
	college := utils.Sanitize(strings.TrimSpace(req.College))
	phone := utils.Sanitize(strings.TrimSpace(req.Phone))

	if name == "" || email == "" || req.Password == "" || college == "" {
		response.BadRequest(c, "all fields are required")
		return
	}
	if !utils.ValidEmail(email) {
		response.BadRequest(c, "invalid email format")
		return
	}
	if len(req.Password) < utils.MinPasswordLength {
		response.BadRequest(c, "password must be at least 6 characters")
		return
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), email)
	if err != nil {
		response.Internal(c, "failed to check email")
		return
	}
	if exists {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		College:  college,
		Phone:    phone,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.Internal(c, "failed to create user")
		return
	}

	token, err := h.jwt.Generate(user.ID.Hex(), user.Name, models.RoleUser)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	h.setSessionCookie(c, token)
	pub := user.ToPublic()
	response.Created(c, TokenResponse{Token: token, User: &pub})
}

// Logout handles GET /logout: clears the session cookie and redirects home.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/?flash=Logged+out+successfully")
}

// Dashboard handles GET /dashboard: the current user without the password hash.
func (h *Handler) Dashboard(c *gin.Context, userID string) {
	if userID == AdminUserID {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToPublic())
}

// ListUsers handles GET /admin/users: paginated users, passwords excluded.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	users, total, err := h.repo.List(c.Request.Context(), pagination.Skip(page), pagination.PageSize)
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, gin.H{"users": users, "pagination": pagination.Paginate(page, total)})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, h.jwt.ExpireHours()*3600, "/", "", false, true)
}
