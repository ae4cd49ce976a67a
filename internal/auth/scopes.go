package auth

// OAuth scopes understood by the training service.
const (
	ScopeTrainingRead  = "training:read"
	ScopeTrainingWrite = "training:write"
)
