package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown              = "UNKNOWN"
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeDecisionMissing      = "DECISION_MISSING"
	CodeCollaboratorFailed   = "POSSESSION_COLLABORATOR_FAILED"
	CodeDecisionSourceKind   = "DECISION_SOURCE_INVALID_KIND"
	CodeDecisionScriptFailed = "DECISION_SCRIPT_FAILED"
	CodeNotFound             = "NOT_FOUND"
)

var enUS = map[Code]string{
	CodeUnknown:              "An unexpected error occurred.",
	CodeInvalidArgument:      "Missing required parameter: {{.Param}}.",
	CodeDecisionMissing:      "The AI did not produce a decision.",
	CodeCollaboratorFailed:   "The character could not act right now.",
	CodeDecisionSourceKind:   "Unknown decision source {{.Kind}}.",
	CodeDecisionScriptFailed: "The decision script failed.",
	CodeNotFound:             "Not found.",
}

var ptBR = map[Code]string{
	CodeUnknown:              "Ocorreu um erro inesperado.",
	CodeInvalidArgument:      "Parâmetro obrigatório ausente: {{.Param}}.",
	CodeDecisionMissing:      "A IA não produziu uma decisão.",
	CodeCollaboratorFailed:   "O personagem não pode agir agora.",
	CodeDecisionSourceKind:   "Fonte de decisão desconhecida {{.Kind}}.",
	CodeDecisionScriptFailed: "O script de decisão falhou.",
	CodeNotFound:             "Não encontrado.",
}
