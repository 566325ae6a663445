package service

import (
	"context"
	"sync"
	"testing"
	"time"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeTodoRepo is an in-memory TodoRepo with the same error and
// owner-filtering contract as the Mongo implementation.
type fakeTodoRepo struct {
	mu    sync.Mutex
	todos map[primitive.ObjectID]dom.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[primitive.ObjectID]dom.Todo)}
}

func (r *fakeTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = primitive.NewObjectID()
	r.todos[t.ID] = t
	return t, nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return dom.Todo{}, mongo.ErrNoDocuments
	}
	return t, nil
}

func (r *fakeTodoRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []dom.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			list = append(list, t)
		}
	}
	return list, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return dom.Todo{}, mongo.ErrNoDocuments
	}
	t.Completed = patch.Completed
	t.CompletedAt = patch.CompletedAt
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Note != nil {
		t.Note = *patch.Note
	}
	r.todos[id] = t
	return t, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return dom.Todo{}, mongo.ErrNoDocuments
	}
	delete(r.todos, id)
	return t, nil
}

func TestCreateTodoDefaults(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()

	todo, err := svc.Create(context.Background(), owner, "  Buy milk  ", " remember oat ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, "remember oat", todo.Note)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Equal(t, owner, todo.OwnerID)
	assert.False(t, todo.ID.IsZero())
}

func TestCreateTodoRejectsEmptyTitle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), owner, title, "")
		assert.ErrorIs(t, err, ErrEmptyTitle, "title %q", title)
	}
}

func TestGetByIDOwnerScoped(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, nil)
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	todo, err := svc.Create(context.Background(), owner, "First test todo", "")
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), owner, todo.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	// Another owner sees not-found, never the record.
	_, err = svc.GetByID(context.Background(), other, todo.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMalformedIDShortCircuits(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, nil)
	owner := primitive.NewObjectID()

	_, err := svc.GetByID(context.Background(), owner, "123abc")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Delete(context.Background(), owner, "123abc")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(context.Background(), owner, "123abc", nil, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCompleteSetsTimestamp(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()
	todo, err := svc.Create(context.Background(), owner, "First test todo", "")
	require.NoError(t, err)

	completed := true
	before := time.Now().UnixMilli()
	got, err := svc.Update(context.Background(), owner, todo.ID.Hex(), nil, nil, &completed)
	require.NoError(t, err)

	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.GreaterOrEqual(t, *got.CompletedAt, before)
}

func TestUpdateUncompleteClearsTimestampAndNote(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()
	todo, err := svc.Create(context.Background(), owner, "Second test todo", "Note")
	require.NoError(t, err)

	completed := true
	_, err = svc.Update(context.Background(), owner, todo.ID.Hex(), nil, nil, &completed)
	require.NoError(t, err)

	uncompleted := false
	got, err := svc.Update(context.Background(), owner, todo.ID.Hex(), nil, nil, &uncompleted)
	require.NoError(t, err)

	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	// Uncompleting also clears the note (legacy behavior).
	assert.Equal(t, "", got.Note)
}

func TestUpdateWithoutCompletedFlagForcesIncomplete(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()
	todo, err := svc.Create(context.Background(), owner, "First test todo", "")
	require.NoError(t, err)

	completed := true
	_, err = svc.Update(context.Background(), owner, todo.ID.Hex(), nil, nil, &completed)
	require.NoError(t, err)

	// A patch that does not mention completed resets it.
	title := "New title"
	got, err := svc.Update(context.Background(), owner, todo.ID.Hex(), &title, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo(), nil)
	owner := primitive.NewObjectID()
	todo, err := svc.Create(context.Background(), owner, "First test todo", "")
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(context.Background(), owner, todo.ID.Hex(), &blank, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestDeleteOwnerScoped(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, nil)
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	todo, err := svc.Create(context.Background(), owner, "Second test todo", "")
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), other, todo.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Delete(context.Background(), owner, todo.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	_, err = svc.GetByID(context.Background(), owner, todo.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScopedToOwner(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, nil)
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), alice, "First test todo", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice, "Second test todo", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob, "Bob's todo", "")
	require.NoError(t, err)

	aliceList, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, aliceList, 2)

	bobList, err := svc.List(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, "Bob's todo", bobList[0].Title)
}
