// Package binding persists the association between a chat-platform user and
// their score-tracker credentials. Bindings are created on first verified
// bind, updated in place on re-bind, and never auto-deleted.
package binding

// Binding is one user's stored credential set. Only the fields needed for
// the bound provider(s) are populated; a row with no credential fields at
// all is treated as unbound.
type Binding struct {
	UserID                string `json:"user_id"`
	FriendCode            string `json:"friend_code,omitempty"`
	LxnsAPIKey            string `json:"lxns_api_key,omitempty"`
	DivingFishImportToken string `json:"diving_fish_import_token,omitempty"`
	DivingFishUsername    string `json:"diving_fish_username,omitempty"`
	DefaultProvider       string `json:"default_provider,omitempty"`
}
