package mojang

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/strutils"
)

// Decodes the value stored under exactly key into dst. Missing and null values report false.
//
// The service's keys are matched as written, unlike the case-insensitive matching of struct tags.
func decodeField(object map[string]json.RawMessage, key string, dst any) (bool, error) {
	raw, ok := object[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return true, nil
}

func requireStringField(object map[string]json.RawMessage, key string) (string, error) {
	var value string
	ok, err := decodeField(object, key, &value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: missing %s", domain.ErrParse, key)
	}
	return value, nil
}

func parseIdentity(data []byte) (domain.PlayerIdentity, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return domain.PlayerIdentity{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if object == nil {
		return domain.PlayerIdentity{}, fmt.Errorf("%w: expected an object", domain.ErrParse)
	}

	name, err := requireStringField(object, "name")
	if err != nil {
		return domain.PlayerIdentity{}, err
	}
	rawID, err := requireStringField(object, "id")
	if err != nil {
		return domain.PlayerIdentity{}, err
	}

	id, err := strutils.ParseServiceUUID(rawID)
	if err != nil {
		return domain.PlayerIdentity{}, fmt.Errorf("%w: invalid id: %w", domain.ErrParse, err)
	}

	return domain.PlayerIdentity{
		UUID: id,
		Name: name,
	}, nil
}

func parseNameHistory(data []byte) ([]domain.NameHistoryEntry, error) {
	var response []map[string]json.RawMessage
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: expected an array", domain.ErrParse)
	}

	entries := make([]domain.NameHistoryEntry, 0, len(response))
	for i, object := range response {
		name, err := requireStringField(object, "name")
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		// Milliseconds since the epoch. Missing for the original name.
		var changedToAt int64
		hasChangedToAt, err := decodeField(object, "changedToAt", &changedToAt)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", domain.ErrParse, i, err)
		}

		var changedAt time.Time
		if hasChangedToAt {
			changedAt = time.UnixMilli(changedToAt).UTC()
		}

		entries = append(entries, domain.NameHistoryEntry{
			Name:      name,
			ChangedAt: changedAt,
		})
	}

	return entries, nil
}

// Services whose status is not a known status name are dropped
func parseStatusMap(data []byte) (map[string]domain.ServiceStatus, error) {
	var response []map[string]json.RawMessage
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: expected an array", domain.ErrParse)
	}

	statuses := make(map[string]domain.ServiceStatus, len(response))
	for _, object := range response {
		for service, raw := range object {
			var statusName string
			if err := json.Unmarshal(raw, &statusName); err != nil {
				continue
			}

			status, ok := domain.ServiceStatusFromName(statusName)
			if !ok {
				continue
			}
			statuses[service] = status
		}
	}

	return statuses, nil
}

// One hash per line. Lines are trimmed and trailing empty lines dropped.
func parseBlockedServers(data []byte) []string {
	lines := strings.Split(string(data), "\n")

	hashes := make([]string, 0, len(lines))
	for _, line := range lines {
		hashes = append(hashes, strings.TrimSpace(line))
	}

	for len(hashes) > 0 && hashes[len(hashes)-1] == "" {
		hashes = hashes[:len(hashes)-1]
	}

	return hashes
}
