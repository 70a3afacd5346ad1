package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flexora-app/backend/internal/auth"
	"github.com/flexora-app/backend/internal/users"
	"github.com/flexora-app/backend/pkg"

	log "github.com/sirupsen/logrus"
)

const defaultBoardSize = 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=leaderboard_test

type boardRepo interface {
	Top(ctx context.Context, limit int) ([]Entry, error)
	UserRank(ctx context.Context, userID int64) (*Rank, error)
}

type BoardResponse struct {
	Entries []Entry `json:"entries"`
}

type Handler struct {
	repo boardRepo
}

func NewHandler(repo boardRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	limit := defaultBoardSize
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "parse limit error", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := handler.repo.Top(r.Context(), limit)
	if err != nil {
		log.Errorf("get leaderboard: %s", err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(BoardResponse{Entries: entries})
	if err != nil {
		log.Errorf("marshal leaderboard response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	rank, err := handler.repo.UserRank(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get rank for user %d: %s", userID, err)
		http.Error(w, "failed to get rank", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(rank)
	if err != nil {
		log.Errorf("marshal rank response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
