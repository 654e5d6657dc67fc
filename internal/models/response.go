package models

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

type JobAccepted struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}
