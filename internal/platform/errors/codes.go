// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument reports a missing or malformed caller-supplied value.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Possession errors
	CodeDecisionMissing      Code = "DECISION_MISSING"
	CodeCollaboratorFailed   Code = "POSSESSION_COLLABORATOR_FAILED"
	CodeDecisionSourceKind   Code = "DECISION_SOURCE_INVALID_KIND"
	CodeDecisionScriptFailed Code = "DECISION_SCRIPT_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidArgument,
		CodeDecisionSourceKind:
		return codes.InvalidArgument

	// FailedPrecondition - collaborator produced something unusable
	case CodeDecisionMissing,
		CodeDecisionScriptFailed:
		return codes.FailedPrecondition

	// Unavailable - a collaborator failed; the caller decides whether to retry
	case CodeCollaboratorFailed:
		return codes.Unavailable

	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
