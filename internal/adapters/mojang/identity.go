package mojang

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/reporting"
	"github.com/Amund211/mojangid/internal/strutils"
	"github.com/google/uuid"
)

// Identity of the account holding name at the given time.
//
// NOTE: Identities are cached by name only. A cached identity for the name is returned
// no matter which time is requested.
func (c *Client) LookupIdentity(ctx context.Context, name string, at time.Time) (identity domain.PlayerIdentity, err error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.LookupIdentity")
	defer func() { endSpan(span, err) }()
	ctx = reporting.AddTagsToContext(ctx, map[string]string{"operation": "identity"})

	identity, created, err := c.identityCache.GetOrCreate(ctx, name, func(ctx context.Context) (domain.PlayerIdentity, error) {
		url := fmt.Sprintf("%s/users/profiles/minecraft/%s?at=%d", c.endpoints.API, name, at.Unix())
		data, err := c.get(ctx, "identity", url, noContentIsNotFound)
		if err != nil {
			return domain.PlayerIdentity{}, err
		}

		identity, err := parseIdentity(data)
		if err != nil {
			reportParseError(ctx, err, data)
			return domain.PlayerIdentity{}, err
		}
		return identity, nil
	})
	c.metrics.recordCache(ctx, "identity", created, err)
	if err != nil {
		return domain.PlayerIdentity{}, fmt.Errorf("could not get identity for name: %w", err)
	}

	return identity, nil
}

// Profile from the session server. Cached by uuid.
func (c *Client) LookupProfile(ctx context.Context, id uuid.UUID) (profile domain.PlayerIdentity, err error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.LookupProfile")
	defer func() { endSpan(span, err) }()
	ctx = reporting.AddTagsToContext(ctx, map[string]string{"operation": "profile"})

	profile, created, err := c.profileCache.GetOrCreate(ctx, id, func(ctx context.Context) (domain.PlayerIdentity, error) {
		url := fmt.Sprintf("%s/session/minecraft/profile/%s", c.endpoints.Session, strutils.StripUUID(id))
		data, err := c.get(ctx, "profile", url, noContentIsNotFound)
		if err != nil {
			return domain.PlayerIdentity{}, err
		}

		profile, err := parseIdentity(data)
		if err != nil {
			reportParseError(ctx, err, data)
			return domain.PlayerIdentity{}, err
		}
		return profile, nil
	})
	c.metrics.recordCache(ctx, "profile", created, err)
	if err != nil {
		return domain.PlayerIdentity{}, fmt.Errorf("could not get profile for uuid: %w", err)
	}

	return profile, nil
}

// Identity of the account currently holding name
func (c *Client) GetIdentity(ctx context.Context, name string) (domain.PlayerIdentity, bool) {
	return c.GetIdentityAt(ctx, name, c.nowFunc())
}

func (c *Client) GetIdentityAt(ctx context.Context, name string, at time.Time) (domain.PlayerIdentity, bool) {
	identity, err := c.LookupIdentity(ctx, name, at)
	return identity, err == nil
}

func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (domain.PlayerIdentity, bool) {
	profile, err := c.LookupProfile(ctx, id)
	return profile, err == nil
}

// Current name of the account, from its profile
func (c *Client) GetName(ctx context.Context, id uuid.UUID) (string, bool) {
	profile, ok := c.GetProfile(ctx, id)
	if !ok {
		return "", false
	}
	return profile.Name, true
}

// Uuid of the account currently holding name
func (c *Client) GetUUID(ctx context.Context, name string) (uuid.UUID, bool) {
	identity, ok := c.GetIdentity(ctx, name)
	if !ok {
		return uuid.UUID{}, false
	}
	return identity.UUID, true
}

// Error kind of a failed lookup, for logging and metrics
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	case errors.Is(err, domain.ErrHTTPStatus):
		return "http-status"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	}
	return "unknown"
}
