// Package errs provides the operational error type used across the service.
//
// Errors are built with E, which accepts its arguments in any order and fills
// in the matching field of an *Error:
//
//	const op errs.Op = "tableMetadataService.GetTable"
//	return errs.E(errs.IO, op, errs.Parameter("key"), err)
//
// Inspired by upspin.io/errors and github.com/gilcrest/diygoapi/errs.
package errs

import (
	"errors"
	"fmt"
)

// Error is the type that implements the error interface.
type Error struct {
	// Op is the operation being performed, usually the name of the method being
	// invoked.
	Op Op
	// User is the name of the user attempting the operation.
	User UserName
	// Kind is the class of error, such as permission failure, or "Other" if its
	// class is unknown or irrelevant.
	Kind Kind
	// Param represents the parameter related to the error.
	Param Parameter
	// Code is a human-readable, short representation of the error.
	Code Code
	// The underlying error that triggered this one, if any.
	Err error
}

func (e *Error) isZero() bool {
	return e.Op == "" && e.User == "" && e.Kind == 0 && e.Param == "" && e.Code == "" && e.Err == nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Op describes an operation, usually as the package and method,
// such as "tableMetadataService.GetTable".
type Op string

// UserName is the subject performing the operation.
type UserName string

// Parameter represents the parameter related to the error.
type Parameter string

// Code is a human-readable, short representation of the error.
type Code string

// Kind defines the kind of error this is.
type Kind uint8

// Kinds of errors.
const (
	Other                Kind = iota // Unclassified error.
	Invalid                          // Invalid operation for this type of item.
	IO                               // External I/O error such as network failure.
	Exist                            // Item already exists.
	NotExist                         // Item does not exist.
	Private                          // Information withheld.
	Internal                         // Internal error or inconsistency.
	BrokenLink                       // Link target does not exist.
	Database                         // Error from database.
	Validation                       // Input validation error.
	Unanticipated                    // Unanticipated error.
	InvalidRequest                   // Invalid Request
	Unauthenticated                  // Missing or invalid credentials.
	Unauthorized                     // Not allowed to perform the operation.
	UnsupportedMediaType             // Unsupported media type.
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other_error"
	case Invalid:
		return "invalid_operation"
	case IO:
		return "I/O_error"
	case Exist:
		return "item_already_exists"
	case NotExist:
		return "item_does_not_exist"
	case Private:
		return "information_withheld"
	case Internal:
		return "internal_error"
	case BrokenLink:
		return "broken_link"
	case Database:
		return "database_error"
	case Validation:
		return "input_validation_error"
	case Unanticipated:
		return "unanticipated_error"
	case InvalidRequest:
		return "invalid_request_error"
	case Unauthenticated:
		return "unauthenticated_request"
	case Unauthorized:
		return "unauthorized_request"
	case UnsupportedMediaType:
		return "unsupported_media_type"
	}

	return "unknown_error_kind"
}

// E builds an error value from its arguments.
//
// The type of each argument determines its meaning. If more than one argument
// of a given type is presented, only the last one is recorded.
//
// If the error is printed, only the underlying error is shown. The fields are
// used for routing the error to the right HTTP status and for logging.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("call to errs.E with no arguments")
	}

	e := &Error{}

	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case UserName:
			e.User = arg
		case string:
			e.Err = Str(arg)
		case Kind:
			e.Kind = arg
		case Parameter:
			e.Param = arg
		case Code:
			e.Code = arg
		case *Error:
			errorCopy := *arg
			e.Err = &errorCopy
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	prev, ok := e.Err.(*Error)
	if !ok {
		return e
	}

	// The previous error was also one of ours. Suppress duplications so the
	// message won't contain the same kind, parameter or code twice.
	if prev.Kind == e.Kind {
		prev.Kind = Other
	}

	if e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}

	if prev.Code == e.Code {
		prev.Code = ""
	}

	if e.Code == "" {
		e.Code = prev.Code
		prev.Code = ""
	}

	if prev.Param == e.Param {
		prev.Param = ""
	}

	if e.Param == "" {
		e.Param = prev.Param
		prev.Param = ""
	}

	if prev.User == e.User {
		prev.User = ""
	}

	if e.User == "" {
		e.User = prev.User
		prev.User = ""
	}

	return e
}

// Str returns an error that formats as the given text.
func Str(text string) error {
	return errors.New(text)
}

// KindIs reports whether err is an *Error of the given Kind. If err is nil
// then KindIs returns false.
func KindIs(kind Kind, err error) bool {
	var e *Error

	if errors.As(err, &e) {
		if e.Kind != Other {
			return e.Kind == kind
		}

		if e.Err != nil {
			return KindIs(kind, e.Err)
		}
	}

	return false
}

// OpStack returns the operations an error passed through, outermost first.
func OpStack(err error) []string {
	var ops []string

	for err != nil {
		e, ok := err.(*Error)
		if !ok {
			break
		}

		if e.Op != "" {
			ops = append(ops, string(e.Op))
		}

		err = e.Err
	}

	return ops
}
