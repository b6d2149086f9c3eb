package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/possession/internal/platform/errors"
)

const (
	// ParamDecisionSource names the decision source constructor argument.
	ParamDecisionSource = "decisionSource"
	// ParamActionExecutor names the action executor constructor argument.
	ParamActionExecutor = "actionExecutor"

	metadataParam = "Param"
)

var (
	// ErrInvalidArgument matches construction failures caused by a missing
	// collaborator. Compare with errors.Is.
	ErrInvalidArgument = apperrors.New(apperrors.CodeInvalidArgument, "invalid argument")
	// ErrDecisionMissing matches a source that returned neither a decision nor an error.
	ErrDecisionMissing = apperrors.New(apperrors.CodeDecisionMissing, "decision source returned no decision")
)

func missingArgument(param string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidArgument,
		fmt.Sprintf("%s is required", param),
		map[string]string{metadataParam: param},
	)
}

// MissingParam returns the constructor argument named by an invalid-argument
// error, or "" when err is not one.
func MissingParam(err error) string {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeInvalidArgument {
		return ""
	}
	return domainErr.Metadata[metadataParam]
}
