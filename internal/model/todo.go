package model

type Todo struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type CreateTodoRequest struct {
	Todos []Todo `json:"todos"`
}
