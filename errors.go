package eduauth

import "errors"

var (
	// ErrNoTokenReturned is an exported constant or variable used by the session manager.
	ErrNoTokenReturned = errors.New("sign-in response carried no token")
	// ErrStorageFailure is an exported constant or variable used by the session manager.
	ErrStorageFailure = errors.New("session storage failure")
	// ErrSignInFailed is an exported constant or variable used by the session manager.
	ErrSignInFailed = errors.New("sign-in failed")
	// ErrManagerNotReady is an exported constant or variable used by the session manager.
	ErrManagerNotReady = errors.New("manager not initialized")
)
