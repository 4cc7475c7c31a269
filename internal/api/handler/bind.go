package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rikka-bot/rikka-data/internal/api/respond"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

type bindLxnsRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"` // LXNS personal API key
}

// BindLxns verifies an LXNS personal API key and stores it together with the
// discovered friend code.
// @Summary Bind an LXNS account
// @Tags bind
// @Accept json
// @Produce json
// @Param request body bindLxnsRequest true "user id and personal API key"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /bind/lxns [post]
func (h *Handler) BindLxns(w http.ResponseWriter, r *http.Request) {
	var req bindLxnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Token == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "user_id and token are required")
		return
	}

	// Verify the key upstream before persisting anything.
	info, err := h.lxns.VerifyPersonalToken(r.Context(), req.Token)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	ctx := r.Context()
	if info.FriendCode != "" {
		if err := h.bindings.SetFriendCode(ctx, req.UserID, info.FriendCode); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}
	if err := h.bindings.SetLxnsAPIKey(ctx, req.UserID, req.Token); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.logger.Info("bound LXNS account", "user_id", req.UserID, "player", info.Name)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"provider":    provider.NameLXNS,
		"player_name": info.Name,
		"friend_code": info.FriendCode,
	})
}

type bindDivingFishRequest struct {
	UserID      string `json:"user_id"`
	ImportToken string `json:"import_token"`
	Username    string `json:"username"`
}

// BindDivingFish stores a DivingFish import token and/or username after
// verifying the account exists.
// @Summary Bind a DivingFish account
// @Tags bind
// @Accept json
// @Produce json
// @Param request body bindDivingFishRequest true "user id, import token, username"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /bind/divingfish [post]
func (h *Handler) BindDivingFish(w http.ResponseWriter, r *http.Request) {
	var req bindDivingFishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "user_id is required")
		return
	}
	if req.ImportToken == "" && req.Username == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "import_token or username is required")
		return
	}

	ctx := r.Context()

	// Verify the account before persisting: by username when given,
	// otherwise by the platform account id.
	df := h.registry.Get(provider.NameDivingFish)
	id := provider.Identity{Username: req.Username}
	if req.Username == "" {
		id = provider.Identity{AccountID: req.UserID}
	}
	info, err := df.FetchPlayerInfo(ctx, id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if req.ImportToken != "" {
		if err := h.bindings.SetDivingFishImportToken(ctx, req.UserID, req.ImportToken); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}
	if req.Username != "" {
		if err := h.bindings.SetDivingFishUsername(ctx, req.UserID, req.Username); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}

	h.logger.Info("bound DivingFish account", "user_id", req.UserID, "player", info.Name)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"provider":    provider.NameDivingFish,
		"player_name": info.Name,
	})
}

type bindFriendCodeRequest struct {
	UserID     string `json:"user_id"`
	FriendCode string `json:"friend_code"`
}

// BindFriendCode stores a friend code directly, verifying it resolves to a
// player on LXNS first.
// @Summary Bind a friend code
// @Tags bind
// @Accept json
// @Produce json
// @Param request body bindFriendCodeRequest true "user id and friend code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /bind/friend-code [post]
func (h *Handler) BindFriendCode(w http.ResponseWriter, r *http.Request) {
	var req bindFriendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.FriendCode == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "user_id and friend_code are required")
		return
	}

	info, err := h.lxns.FetchPlayerInfo(r.Context(), provider.Identity{FriendCode: req.FriendCode})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.bindings.SetFriendCode(r.Context(), req.UserID, req.FriendCode); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.logger.Info("bound friend code", "user_id", req.UserID, "player", info.Name)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"provider":    provider.NameLXNS,
		"player_name": info.Name,
		"friend_code": req.FriendCode,
	})
}

type bindProviderRequest struct {
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
}

// BindProvider stores the user's explicit default-provider preference.
// @Summary Set default provider
// @Tags bind
// @Accept json
// @Produce json
// @Param request body bindProviderRequest true "user id and provider name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /bind/provider [post]
func (h *Handler) BindProvider(w http.ResponseWriter, r *http.Request) {
	var req bindProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "user_id is required")
		return
	}
	if h.registry.Get(req.Provider) == nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "unknown provider "+req.Provider)
		return
	}

	if err := h.bindings.SetDefaultProvider(r.Context(), req.UserID, req.Provider); err != nil {
		h.writeDomainError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"user_id":          req.UserID,
		"default_provider": req.Provider,
	})
}
