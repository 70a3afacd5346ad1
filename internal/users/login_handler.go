package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/flexora-app/backend/internal/identity"
	"github.com/flexora-app/backend/internal/telemetry/metrics"
	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=login_handler_mocks_test.go -package=users_test

const AuthTokenHeader = "X-FLEXORA-AUTH"

type sessionManager interface {
	CreateSession(ctx context.Context, userID int64, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type loginRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpsertGoogleUser(ctx context.Context, info *identity.GoogleUserInfo) (*User, bool, error)
}

type GoogleLoginRequest struct {
	AccessToken string `json:"accessToken"`
}

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type LoginHandler struct {
	repo     loginRepo
	verifier identity.Verifier
	sessions sessionManager
	metrics  *metrics.Manager
}

func NewLoginHandler(
	repo loginRepo,
	verifier identity.Verifier,
	sessions sessionManager,
	metrics *metrics.Manager,
) *LoginHandler {
	return &LoginHandler{
		repo:     repo,
		verifier: verifier,
		sessions: sessions,
		metrics:  metrics,
	}
}

func (handler *LoginHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.login.google")
	defer span.End()

	var loginReq GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("google login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if loginReq.AccessToken == "" {
		http.Error(w, "access token empty", http.StatusBadRequest)
		return
	}

	userInfo, err := handler.verifier.Verify(ctx, loginReq.AccessToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			http.Error(w, "invalid access token", http.StatusUnauthorized)
			return
		}
		log.Errorf("google login, verify token: %s", err)
		http.Error(w, "identity provider unavailable", http.StatusServiceUnavailable)
		return
	}

	user, created, err := handler.repo.UpsertGoogleUser(ctx, userInfo)
	if err != nil {
		log.Errorf("google login, upsert user [%s]: %s", userInfo.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	if created {
		log.Debugf("google login, new user created: %d", user.ID)
	}

	handler.finishLogin(ctx, w, user, http.StatusOK)
}

func (handler *LoginHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.login.signup")
	defer span.End()

	var signupReq SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&signupReq); err != nil {
		log.Tracef("signup, unmarshal json params: %s", err)
		http.Error(w, "signup failed", http.StatusBadRequest)
		return
	}

	signupReq.Email = strings.TrimSpace(strings.ToLower(signupReq.Email))
	if signupReq.Email == "" || !strings.Contains(signupReq.Email, "@") {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}
	if len(signupReq.Password) < 8 {
		http.Error(w, "password must have at least 8 characters", http.StatusBadRequest)
		return
	}
	if signupReq.DisplayName == "" {
		http.Error(w, "display name empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(signupReq.Password)
	if err != nil {
		log.Errorf("signup, hash password: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, User{
		Email:        signupReq.Email,
		DisplayName:  signupReq.DisplayName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		log.Errorf("signup, create user [%s]: %s", signupReq.Email, err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	handler.finishLogin(ctx, w, user, http.StatusCreated)
}

func (handler *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.login.local")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	loginReq.Email = strings.TrimSpace(strings.ToLower(loginReq.Email))

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login, get user [%s]: %s", loginReq.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	// google-only accounts have no password set
	if user.PasswordHash == "" || !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		http.Error(w, "wrong credentials", http.StatusUnauthorized)
		return
	}

	handler.finishLogin(ctx, w, user, http.StatusOK)
}

func (handler *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.login.logout")
	defer span.End()

	token := r.Header.Get(AuthTokenHeader)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *LoginHandler) finishLogin(ctx context.Context, w http.ResponseWriter, user *User, statusCode int) {
	token, err := handler.sessions.CreateSession(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login, create session for user %d: %s", user.ID, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLogins.Inc()

	respJson, err := json.Marshal(LoginResponse{
		Token: token,
		User:  user,
	})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d logged in", user.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
