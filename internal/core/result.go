package core

// Result is what a step reports after Apply: whether the guest changed and a
// message for the run summary.
type Result struct {
	Changed bool
	Failed  bool
	Message string
	Error   error
}

// SuccessChange returns a successful result that modified the guest.
func SuccessChange(msg string) Result {
	return Result{
		Changed: true,
		Message: msg,
	}
}

// SuccessNoChange returns a successful result that left the guest as it was.
func SuccessNoChange(msg string) Result {
	return Result{
		Message: msg,
	}
}

// Failure returns a failed result.
func Failure(err error, msg string) Result {
	return Result{
		Failed:  true,
		Message: msg,
		Error:   err,
	}
}
