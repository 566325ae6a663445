package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/thienhiep1711/node-todo-api/internal/cache"
	dom "github.com/thienhiep1711/node-todo-api/internal/domain"
	"github.com/thienhiep1711/node-todo-api/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title is required")
)

// TodoService applies the business rules over owner-scoped todos.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, ownerID primitive.ObjectID, title, note string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	note = strings.TrimSpace(note)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}
	t, err := s.repo.Create(ctx, dom.Todo{
		Title:   title,
		Note:    note,
		OwnerID: ownerID,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Todo, error) {
	if s.cache != nil {
		key := "list:" + ownerID.Hex()
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByOwner(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TodoService) GetByID(ctx context.Context, ownerID primitive.ObjectID, id string) (dom.Todo, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, ownerID, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update applies an allow-listed patch. Marking a todo completed
// stamps completedAt with the current time in unix ms; anything else
// forces completed=false and clears both completedAt and the note.
// Clearing the note on uncomplete is legacy client behavior, kept
// for compatibility.
func (s *TodoService) Update(ctx context.Context, ownerID primitive.ObjectID, id string, title, note *string, completed *bool) (dom.Todo, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	var patch dom.TodoPatch
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return dom.Todo{}, ErrEmptyTitle
		}
		patch.Title = &trimmed
	}
	if note != nil {
		trimmed := strings.TrimSpace(*note)
		patch.Note = &trimmed
	}
	if completed != nil && *completed {
		now := time.Now().UnixMilli()
		patch.Completed = true
		patch.CompletedAt = &now
	} else {
		empty := ""
		patch.Completed = false
		patch.CompletedAt = nil
		patch.Note = &empty
	}
	t, err := s.repo.Update(ctx, ownerID, oid, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// Delete removes the todo and returns the removed document.
func (s *TodoService) Delete(ctx context.Context, ownerID primitive.ObjectID, id string) (dom.Todo, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	t, err := s.repo.Delete(ctx, ownerID, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

func (s *TodoService) invalidateCache(ctx context.Context, ownerID primitive.ObjectID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}

// parseObjectID validates the path parameter before any query; a
// malformed id behaves exactly like a missing document.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
