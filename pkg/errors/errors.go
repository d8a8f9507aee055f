package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Configuration errors (2xxx)
	ErrCodeConfigNotFound   ErrorCode = "UPLG2001"
	ErrCodeConfigInvalid    ErrorCode = "UPLG2002"
	ErrCodeCredentialsUnset ErrorCode = "UPLG2003"
	ErrCodeCredentialsFile  ErrorCode = "UPLG2004"
	ErrCodeEncryptionFailed ErrorCode = "UPLG2005"

	// Repository errors (3xxx)
	ErrCodeRepoInit     ErrorCode = "UPLG3001"
	ErrCodeRemoteConfig ErrorCode = "UPLG3002"
	ErrCodeCommitFailed ErrorCode = "UPLG3003"
	ErrCodePushFailed   ErrorCode = "UPLG3004"
	ErrCodeRebaseFailed ErrorCode = "UPLG3005"
	ErrCodeGit          ErrorCode = "UPLG3006"

	// Sampling errors (4xxx)
	ErrCodeSampleFailed ErrorCode = "UPLG4001"

	// File system errors (5xxx)
	ErrCodeFileOperation  ErrorCode = "UPLG5001"
	ErrCodeFilePermission ErrorCode = "UPLG5002"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "UPLG9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // Startup failure, process cannot continue
	SeverityError    ErrorSeverity = "ERROR"    // Cycle failed, loop continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit its context
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// wrapOrNew wraps cause when present and constructs a plain error when
// not. Constructors use it so a nil cause never yields a nil *AppError.
func wrapOrNew(cause error, code ErrorCode, message string) *AppError {
	if cause == nil {
		return New(code, message)
	}
	return Wrap(cause, code, message)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSeverity(SeverityCritical).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'uplog setup' to reconfigure",
		)
}

// CredentialsError creates an error for unresolved or placeholder credentials
func CredentialsError(message string, cause error) *AppError {
	return wrapOrNew(cause, ErrCodeCredentialsUnset, message).
		WithSeverity(SeverityCritical).
		WithSuggestions(
			"Export GH_TOKEN with a valid personal access token",
			"Run 'uplog setup' to store credentials",
		)
}

// GitError creates a git invocation error
func GitError(message string, args []string, cause error) *AppError {
	return wrapOrNew(cause, ErrCodeGit, message).
		WithContext("args", strings.Join(args, " ")).
		AsRecoverable()
}

// FileError creates a file system error
func FileError(message string, path string, cause error) *AppError {
	err := wrapOrNew(cause, ErrCodeFileOperation, message).
		WithContext("path", path).
		AsRecoverable()

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		err.Code = ErrCodeFilePermission
		_ = err.WithSuggestions(
			fmt.Sprintf("Check write permissions on %s", path),
		)
	}

	return err
}

// SampleError creates an uptime sampling error
func SampleError(message string, cause error) *AppError {
	return wrapOrNew(cause, ErrCodeSampleFailed, message).
		AsRecoverable().
		WithSuggestions("Verify the 'uptime' command is on PATH")
}

// Re-exported standard helpers so callers need a single errors import

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code from an error, if it is an AppError
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsRecoverable reports whether the error is marked recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}
