package mojang

import (
	"context"
	"fmt"

	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/reporting"
	"github.com/Amund211/mojangid/internal/strutils"
	"github.com/google/uuid"
)

// All names held by the account, oldest first. Not cached.
func (c *Client) LookupNameHistory(ctx context.Context, id uuid.UUID) (history []domain.NameHistoryEntry, err error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.LookupNameHistory")
	defer func() { endSpan(span, err) }()
	ctx = reporting.AddTagsToContext(ctx, map[string]string{"operation": "namehistory"})

	url := fmt.Sprintf("%s/user/profiles/%s/names", c.endpoints.API, strutils.StripUUID(id))
	data, err := c.get(ctx, "namehistory", url, noContentIsNotFound)
	if err != nil {
		return nil, fmt.Errorf("could not get name history for uuid: %w", err)
	}

	history, err = parseNameHistory(data)
	if err != nil {
		reportParseError(ctx, err, data)
		return nil, fmt.Errorf("could not get name history for uuid: %w", err)
	}

	return history, nil
}

func (c *Client) GetNameHistory(ctx context.Context, id uuid.UUID) ([]domain.NameHistoryEntry, bool) {
	history, err := c.LookupNameHistory(ctx, id)
	return history, err == nil
}
