package mojang

import (
	"context"
	"fmt"

	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/reporting"
)

// Status of each upstream service, keyed by hostname. Services reporting an
// unknown status are left out.
func (c *Client) LookupStatus(ctx context.Context) (statuses map[string]domain.ServiceStatus, err error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.LookupStatus")
	defer func() { endSpan(span, err) }()
	ctx = reporting.AddTagsToContext(ctx, map[string]string{"operation": "status"})

	data, err := c.get(ctx, "status", c.endpoints.Status+"/check", noContentIsSuccess)
	if err != nil {
		return nil, fmt.Errorf("could not get service status: %w", err)
	}

	statuses, err = parseStatusMap(data)
	if err != nil {
		reportParseError(ctx, err, data)
		return nil, fmt.Errorf("could not get service status: %w", err)
	}

	return statuses, nil
}

func (c *Client) GetStatus(ctx context.Context) (map[string]domain.ServiceStatus, bool) {
	statuses, err := c.LookupStatus(ctx)
	return statuses, err == nil
}

// Hashes of the servers blocked by the session server
func (c *Client) LookupBlockedServers(ctx context.Context) (hashes []string, err error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.LookupBlockedServers")
	defer func() { endSpan(span, err) }()
	ctx = reporting.AddTagsToContext(ctx, map[string]string{"operation": "blockedservers"})

	data, err := c.get(ctx, "blockedservers", c.endpoints.Session+"/blockedservers", noContentIsSuccess)
	if err != nil {
		return nil, fmt.Errorf("could not get blocked servers: %w", err)
	}

	return parseBlockedServers(data), nil
}

func (c *Client) GetBlockedServers(ctx context.Context) ([]string, bool) {
	hashes, err := c.LookupBlockedServers(ctx)
	return hashes, err == nil
}
