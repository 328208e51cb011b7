package models

// OptimiseResponse is the payload for a completed job. A FAILED job is still
// a normal response: the solver ran and reported infeasible/unbounded.
type OptimiseResponse struct {
	JobID          string            `json:"job_id"`
	JobStatus      string            `json:"job_status"`
	ObjectiveGBP   *float64          `json:"objective_gbp"`
	Messages       []string          `json:"messages"`
	Outputs        map[string]string `json:"outputs"`
	JobServingTime float64           `json:"job_serving_time"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
