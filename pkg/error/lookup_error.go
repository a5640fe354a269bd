package error

import (
	"fmt"
	"net/http"
)

// ConfigLookupError wraps a failure to load a workspace's workflow configuration.
// The rules engine absorbs it and falls back to the built-in defaults.
type ConfigLookupError struct {
	WorkspaceID string
	Err         error
}

func (e *ConfigLookupError) Error() string {
	return fmt.Sprintf("config lookup for workspace %s failed: %v", e.WorkspaceID, e.Err)
}

func (e *ConfigLookupError) Unwrap() error {
	return e.Err
}

func (e *ConfigLookupError) ErrCode() string {
	return "CONFIG_LOOKUP_ERROR"
}

func (e *ConfigLookupError) StatusCode() int {
	return http.StatusServiceUnavailable
}

// ConversationLookupError wraps a failure to read a contact's most recent conversation.
// The lead classifier absorbs it and reports the contact as new.
type ConversationLookupError struct {
	WorkspaceID string
	ContactID   string
	Err         error
}

func (e *ConversationLookupError) Error() string {
	return fmt.Sprintf("conversation lookup for contact %s in workspace %s failed: %v", e.ContactID, e.WorkspaceID, e.Err)
}

func (e *ConversationLookupError) Unwrap() error {
	return e.Err
}

func (e *ConversationLookupError) ErrCode() string {
	return "CONVERSATION_LOOKUP_ERROR"
}

func (e *ConversationLookupError) StatusCode() int {
	return http.StatusServiceUnavailable
}
