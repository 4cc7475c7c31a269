package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rikka-bot/rikka-data/internal/binding"
)

// BindingStore is the subset of the binding persistence layer the resolver
// needs. Get returns (nil, nil) when the user has no stored binding.
type BindingStore interface {
	Get(ctx context.Context, userID string) (*binding.Binding, error)
	SetFriendCode(ctx context.Context, userID, friendCode string) error
}

// Selection is a resolved provider call target: which client to use and the
// authenticated identity to address it with.
type Selection struct {
	Provider ScoreProvider
	Identity Identity
}

// Resolver picks a provider instance and credential for a user id.
//
// Resolution order encodes a policy: an explicit user preference wins;
// otherwise providers requiring the least-sensitive credential come first
// (public lookup by platform account id) before import-token providers that
// need private secrets.
type Resolver struct {
	registry *Registry
	bindings BindingStore
	logger   *slog.Logger
}

// NewResolver creates a resolver over the given registry and binding store.
func NewResolver(registry *Registry, bindings BindingStore, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{registry: registry, bindings: bindings, logger: logger}
}

// Resolve decides the provider and identity for userID.
//
//  1. Load the stored binding.
//  2. An explicit default-provider preference wins when its credential is
//     present.
//  3. A binding with a DivingFish import token and no LXNS key selects
//     DivingFish.
//  4. Otherwise LXNS: by stored friend code, or a just-in-time lookup by the
//     platform account id, caching the discovered friend code back into the
//     binding for future calls.
//  5. With nothing usable, fail with ErrUnbound.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*Selection, error) {
	b, err := r.bindings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load binding for %s: %w", userID, err)
	}

	if b != nil && b.DefaultProvider != "" {
		if sel := r.selectPreferred(b); sel != nil {
			return sel, nil
		}
		r.logger.Warn("default provider has no usable credential, falling through",
			"user_id", userID, "default_provider", b.DefaultProvider)
	}

	if b != nil && b.DivingFishImportToken != "" && b.LxnsAPIKey == "" {
		return r.selectDivingFish(b)
	}

	return r.selectLXNS(ctx, userID, b)
}

// selectPreferred honors an explicit default-provider preference when its
// credential is present. Returns nil to fall through to the policy order.
func (r *Resolver) selectPreferred(b *binding.Binding) *Selection {
	switch b.DefaultProvider {
	case NameLXNS:
		if b.FriendCode == "" && b.LxnsAPIKey == "" {
			return nil
		}
		id := Identity{FriendCode: b.FriendCode, PersonalToken: b.LxnsAPIKey}
		if id.FriendCode == "" {
			id.AccountID = b.UserID
		}
		return &Selection{Provider: r.registry.Get(NameLXNS), Identity: id}
	case NameDivingFish:
		if b.DivingFishImportToken == "" && b.DivingFishUsername == "" {
			return nil
		}
		sel, err := r.selectDivingFish(b)
		if err != nil {
			return nil
		}
		return sel
	default:
		return nil
	}
}

func (r *Resolver) selectDivingFish(b *binding.Binding) (*Selection, error) {
	id := Identity{ImportToken: b.DivingFishImportToken}
	if b.DivingFishUsername != "" {
		id.Username = b.DivingFishUsername
	} else {
		id.AccountID = b.UserID
	}
	return &Selection{Provider: r.registry.Get(NameDivingFish), Identity: id}, nil
}

func (r *Resolver) selectLXNS(ctx context.Context, userID string, b *binding.Binding) (*Selection, error) {
	lxns := r.registry.Get(NameLXNS)

	var personalToken string
	if b != nil {
		personalToken = b.LxnsAPIKey
		if b.FriendCode != "" {
			return &Selection{
				Provider: lxns,
				Identity: Identity{FriendCode: b.FriendCode, PersonalToken: personalToken},
			}, nil
		}
	}

	// No stored friend code: try a just-in-time lookup by the platform
	// account id, then cache the discovered code for future calls.
	info, err := lxns.FetchPlayerInfo(ctx, Identity{AccountID: userID, PersonalToken: personalToken})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("no binding and account id unknown to %s: %w", NameLXNS, ErrUnbound)
		}
		return nil, err
	}
	if info.FriendCode == "" {
		return nil, fmt.Errorf("%s lookup for %s returned no friend code: %w", NameLXNS, userID, ErrUnbound)
	}

	if err := r.bindings.SetFriendCode(ctx, userID, info.FriendCode); err != nil {
		// The lookup succeeded; a failed write-back only costs a repeat
		// lookup next time.
		r.logger.Warn("failed to cache discovered friend code", "user_id", userID, "error", err)
	}

	return &Selection{
		Provider: lxns,
		Identity: Identity{FriendCode: info.FriendCode, PersonalToken: personalToken},
	}, nil
}
