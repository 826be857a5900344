// Package form держит черновик формы напоминания: поля, цель редактирования и флаг запроса к ИИ.
package form

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

type Saver interface {
	Add(ctx context.Context, d model.Draft) (model.Reminder, error)
	Update(ctx context.Context, id string, d model.Draft) (model.Reminder, error)
}

type Enhancer interface {
	Enhance(ctx context.Context, raw string) model.Enhancement
}

type Controller struct {
	saver    Saver
	enhancer Enhancer

	mu      sync.Mutex
	draft   model.Draft
	editing string

	busy   atomic.Bool
	closed atomic.Bool
}

func NewController(saver Saver, enhancer Enhancer) *Controller {
	return &Controller{
		saver:    saver,
		enhancer: enhancer,
		draft:    emptyDraft(),
	}
}

func emptyDraft() model.Draft {
	return model.Draft{Priority: model.PriorityMedium}
}

func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetTitle(s string) {
	c.mu.Lock()
	c.draft.Title = s
	c.mu.Unlock()
}

func (c *Controller) SetDescription(s string) {
	c.mu.Lock()
	c.draft.Description = s
	c.mu.Unlock()
}

func (c *Controller) SetPriority(p model.Priority) {
	c.mu.Lock()
	c.draft.Priority = p
	c.mu.Unlock()
}

// Editing возвращает id редактируемого напоминания
func (c *Controller) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editing != ""
}

// Edit загружает напоминание в форму
func (c *Controller) Edit(r model.Reminder) {
	c.mu.Lock()
	c.draft = r.Draft().Normalize()
	c.editing = r.ID
	c.mu.Unlock()
}

// Submit: пустой заголовок - ничего не делаем. Новое напоминание очищает форму,
// при редактировании поля остаются как были отправлены, сбрасывается только цель.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	draft := c.Draft()
	if strings.TrimSpace(draft.Title) == "" {
		return false, nil
	}

	id, editing := c.Editing()
	if !editing {
		if _, err := c.saver.Add(ctx, draft); err != nil {
			return false, err
		}
		c.mu.Lock()
		c.draft = emptyDraft()
		c.mu.Unlock()
		return true, nil
	}

	if _, err := c.saver.Update(ctx, id, draft); err != nil {
		return false, err
	}
	c.mu.Lock()
	if c.editing == id {
		c.editing = ""
	}
	c.mu.Unlock()
	return true, nil
}

// Enhance отправляет title + " " + description и перезаписывает все три поля.
// Возвращает false, если заголовок пуст или запрос уже идет.
func (c *Controller) Enhance(ctx context.Context) bool {
	draft := c.Draft()
	if strings.TrimSpace(draft.Title) == "" {
		return false
	}
	if !c.busy.CompareAndSwap(false, true) {
		return false
	}
	defer c.busy.Store(false)

	result := c.enhancer.Enhance(ctx, strings.TrimSpace(draft.Title+" "+draft.Description))
	if c.closed.Load() { // форма уже закрыта, ответ никому не нужен
		return false
	}

	c.mu.Lock()
	c.draft = model.Draft{
		Title:       result.ImprovedTitle,
		Description: result.ImprovedDescription,
		Priority:    result.SuggestedPriority,
	}.Normalize()
	c.mu.Unlock()
	return true
}

func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Cancel сбрасывает цель редактирования и несохраненные поля
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.editing = ""
	c.draft = emptyDraft()
	c.mu.Unlock()
}

// Close отмечает форму как закрытую: опоздавший ответ ИИ будет проигнорирован.
func (c *Controller) Close() {
	c.closed.Store(true)
}
