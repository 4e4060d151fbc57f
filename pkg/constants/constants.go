package constants

// Log level constants for structured logging, starting from 1
// 0 is default if no level is provided
// Guidelines: https://github.com/kubernetes/community/blob/master/contributors/devel/sig-instrumentation/logging.md#what-method-to-use
const (
	LvlDefault = iota + 1 // 1 - General configuration, routine logs
	LvlInfo               // 2 - Remote calls issued, pages fetched
	LvlEvent              // 3 - Request building details, confirmation decisions
	LvlDebug              // 4 - Debug-level logs, tricky logic areas
	LvlTrace              // 5 - Trace-level logs, full request/response dumps
)

// Names of the common cmdlet flags shared by every generated command.
const (
	FlagSelect          = "select"
	FlagForce           = "force"
	FlagNextToken       = "next-token"
	FlagMaxResults      = "max-results"
	FlagNoAutoIteration = "no-auto-iteration"
	FlagAllPages        = "all-pages"
	FlagAccountID       = "account-id"
)

// Selection directives understood by --select.
const (
	SelectAll          = "*"
	SelectParamPrefix  = "^"
	SelectPathSplitter = "."
)

// Process exit codes, derived from the error classification in osperrors.
const (
	ExitOK = iota
	ExitGeneric
	ExitValidation
	ExitNotFound
	ExitPermissionDenied
	ExitConflict
	ExitUnavailable
)
