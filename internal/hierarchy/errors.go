package hierarchy

// ValidationError rejects a semantically invalid write. The message is meant
// to be shown to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Messages returned by the resolver and the service write paths.
const (
	MsgFocusRequiresTopic   = "Focus sessions require topicId"
	MsgTopicNotFound        = "topicId does not exist"
	MsgTopicProjectNotFound = "topic project does not exist"
	MsgProjectMismatch      = "topicId does not match projectId"
	MsgGoalMismatch         = "topicId does not match goalId"
	MsgGoalNotFound         = "goalId does not exist"
	MsgProjectNotFound      = "projectId does not exist"
)
