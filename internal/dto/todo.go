package dto

type CreateTodoRequest struct {
	Title string `json:"title" binding:"required"`
	Note  string `json:"note"`
}

// UpdateTodoRequest is the allow-listed patch body for PATCH /todos/:id.
// Any field absent from the JSON stays nil and is not applied.
type UpdateTodoRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1"`
	Note      *string `json:"note"`
	Completed *bool   `json:"completed"`
}

type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Note        string `json:"note"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	OwnerID     string `json:"owner"`
}

type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// TodoEnvelope wraps a single todo for the routes that return
// {"todo": ...} rather than a bare object.
type TodoEnvelope struct {
	Todo TodoResponse `json:"todo"`
}
