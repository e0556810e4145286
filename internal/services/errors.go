package services

// Custom errors
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// DeliveryError means the lead was valid but the notification could not be sent.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return "lead notification failed: " + e.Err.Error() }

func (e *DeliveryError) Unwrap() error { return e.Err }
