package types

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	// Integers to run through the model. Required; may be empty.
	// example: [5,10]
	Values []int64 `json:"values" example:"5,10"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Model output, positionally aligned with the request values.
	// example: [10,20]
	Result []int64 `json:"result" example:"10,20"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Lifecycle state of the model (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Loaded artifact metadata; absent until the model is ready.
	Model *ModelInfo `json:"model,omitempty"`
	// Load error, if the artifact could not be loaded.
	Error string `json:"error,omitempty"`
	// Total number of successful artifact loads.
	// example: 1
	LoadsTotal uint64 `json:"loads_total" example:"1"`
	// Total number of predictions served.
	// example: 42
	PredictionsTotal uint64 `json:"predictions_total" example:"42"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
