package common

// Result is the structured outcome of a business operation that may be
// rejected by policy (insufficient stock, ineligible coupon, duplicate
// code). Rejections are results, not Go errors: errors are reserved for
// infrastructure failures.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Ok returns a successful result with an optional message.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail returns a rejected result with an explanatory message.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
