package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/form"
	"github.com/BuzzLyutic/reminders-api/internal/model"
	"github.com/BuzzLyutic/reminders-api/internal/repo"
	"github.com/BuzzLyutic/reminders-api/internal/service"
	"github.com/BuzzLyutic/reminders-api/pkg/respond"
)

var errConfirmationRequired = errors.New("confirmation required")

type Enhancer interface {
	Enhance(ctx context.Context, raw string) model.Enhancement
	Configured() bool
}

type ReminderHandler struct {
	store    *service.ReminderStore
	enhancer Enhancer
	backend  string
	logger   *zap.Logger
}

func NewReminderHandler(store *service.ReminderStore, enhancer Enhancer, backend string, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		store:    store,
		enhancer: enhancer,
		backend:  backend,
		logger:   logger,
	}
}

type draftRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (req draftRequest) draft() (model.Draft, error) {
	p, err := model.ParsePriority(req.Priority)
	if err != nil {
		return model.Draft{}, err
	}
	return model.Draft{Title: req.Title, Description: req.Description, Priority: p}, nil
}

type statusResponse struct {
	AIConfigured bool   `json:"aiConfigured"`
	Backend      string `json:"backend"`
}

func (h *ReminderHandler) Status(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, statusResponse{
		AIConfigured: h.enhancer.Configured(),
		Backend:      h.backend,
	})
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := model.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.store.View(filter))
}

func (h *ReminderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.store.Stats())
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, reminder)
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	reminder, err := h.store.Add(r.Context(), d)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/reminders/%s", reminder.ID))
	respond.JSON(w, r, http.StatusCreated, reminder)
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	reminder, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, reminder)
}

func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.store.ToggleComplete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, reminder)
}

// Delete удаляет только с ?confirm=true - аналог диалога подтверждения
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
		h.handleErrors(w, r, errConfirmationRequired)
		return
	}

	if err := h.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Enhance прогоняет черновик через форму: пустой заголовок - 400, иначе всегда 200.
func (h *ReminderHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	f := form.NewController(h.store, h.enhancer)
	defer f.Close()
	f.SetTitle(req.Title)
	f.SetDescription(req.Description)

	if !f.Enhance(r.Context()) {
		h.handleErrors(w, r, service.ErrValidation)
		return
	}

	d := f.Draft()
	respond.JSON(w, r, http.StatusOK, model.Enhancement{
		ImprovedTitle:       d.Title,
		ImprovedDescription: d.Description,
		SuggestedPriority:   d.Priority,
	})
}

func (h *ReminderHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	var req draftRequest
	if err := respond.Decode(r, &req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return model.Draft{}, false
	}

	d, err := req.draft()
	if err != nil {
		h.handleErrors(w, r, err)
		return model.Draft{}, false
	}
	return d, true
}

func (h *ReminderHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, model.ErrInvalidPriority):
		respond.Error(w, r, http.StatusBadRequest, "invalid priority")
	case errors.Is(err, model.ErrInvalidFilter):
		respond.Error(w, r, http.StatusBadRequest, "invalid filter")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	case errors.Is(err, errConfirmationRequired):
		respond.Error(w, r, http.StatusPreconditionRequired, "add ?confirm=true to delete")
	case errors.Is(err, service.ErrPersistence):
		respond.Error(w, r, http.StatusBadGateway, "storage unavailable")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
