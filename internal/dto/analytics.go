package dto

// TopClientDTO is a client ranked by the number of tasks it has.
type TopClientDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	TaskCount int64  `json:"task_count"`
}

// AnalyticsDTO summarises the caller's tasks.
type AnalyticsDTO struct {
	TotalTasks      int64          `json:"total_tasks"`
	CompletedTasks  int64          `json:"completed_tasks"`
	TodoTasks       int64          `json:"todo_tasks"`
	InProgressTasks int64          `json:"in_progress_tasks"`
	BlockedTasks    int64          `json:"blocked_tasks"`
	TopClients      []TopClientDTO `json:"top_clients"`
	User            UserDTO        `json:"user"`
}
