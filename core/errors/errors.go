package errors

import (
	"fmt"

	"github.com/lib/pq"
)

// ErrorCode identifies an application error class independent of transport.
type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrValidation                 ErrorCode = "VALIDATION_FAILED"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrRateLimited                ErrorCode = "RATE_LIMITED"
	ErrTimeslotFull               ErrorCode = "TIMESLOT_FULL"
	ErrNoOpenEvent                ErrorCode = "NO_OPEN_EVENT"
)

// AppError carries an error code, a user-facing message and the wrapped cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Postgres error classes we translate for users. Everything else passes
// through with its raw message.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// Constraint names from migrations/0001_init.up.sql.
const (
	ConstraintParticipantIdentity   = "participants_identity_key"
	ConstraintGuardianEmail         = "guardians_email_key"
	ConstraintParticipantAdultEmail = "participants_adult_email_check"
)

// FromPostgres decodes the two backend error classes the original site
// translated for users (duplicate key, check violation). All other database
// errors surface verbatim as internal errors.
func FromPostgres(err error) *AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return NewAppError(ErrInternalServer, err.Error(), err)
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		switch pqErr.Constraint {
		case ConstraintParticipantIdentity:
			return NewAppError(ErrAlreadyExists, "Diese E-Mail-Adresse ist bereits registriert.", err)
		case ConstraintGuardianEmail:
			return NewAppError(ErrAlreadyExists, "Für diese E-Mail-Adresse existiert bereits eine Anmeldung.", err)
		default:
			return NewAppError(ErrAlreadyExists, "Dieser Eintrag existiert bereits.", err)
		}
	case pgCheckViolation:
		if pqErr.Constraint == ConstraintParticipantAdultEmail {
			return NewAppError(ErrInvalidInput, "Für Erwachsene ist eine E-Mail-Adresse erforderlich.", err)
		}
		return NewAppError(ErrInvalidInput, "Eingabe verletzt eine Datenbankregel: "+pqErr.Constraint, err)
	default:
		return NewAppError(ErrInternalServer, pqErr.Message, err)
	}
}
