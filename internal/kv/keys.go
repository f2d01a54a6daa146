package kv

import "strings"

const (
	KeyUsers        = "users"
	KeyCurrentUser  = "current_user"
	KeyApplications = "applications"
	KeySettings     = "settings"
)

// Per-user namespaces. The full key is "<namespace>:<userID>".
const (
	NamespaceUserData       = "user_data"
	NamespaceDocuments      = "documents"
	NamespaceForms          = "forms"
	NamespaceChatHistory    = "chat_history"
	NamespaceCivicsProgress = "civics_progress"
)

// UserNamespaces lists every per-user namespace, e.g. for account deletion.
var UserNamespaces = []string{
	NamespaceUserData,
	NamespaceDocuments,
	NamespaceForms,
	NamespaceChatHistory,
	NamespaceCivicsProgress,
}

// UserKey builds the key of a per-user blob.
func UserKey(namespace, userID string) string {
	return namespace + ":" + userID
}

// SessionKey returns the key holding the session snapshot of a named
// session. The empty name is the default session.
func SessionKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return KeyCurrentUser
	}
	return KeyCurrentUser + ":" + name
}
