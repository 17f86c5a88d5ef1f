package mojang

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Amund211/mojangid/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
		expected domain.PlayerIdentity
		err      error
	}{
		{
			name:     "Real valid response",
			response: []byte(`{"name":"Timmi6790","id":"9d59daad6f624bd9b13ec961bf906750"}`),
			expected: domain.PlayerIdentity{
				UUID: uuid.MustParse("9d59daad-6f62-4bd9-b13e-c961bf906750"),
				Name: "Timmi6790",
			},
		},
		{
			name: "Pretty printed with extra fields",
			response: []byte(`{
  "id" : "a937646bf11544c38dbf9ae4a65669a0",
  "name" : "Skydeath",
  "legacy" : true
}`),
			expected: domain.PlayerIdentity{
				UUID: uuid.MustParse("a937646b-f115-44c3-8dbf-9ae4a65669a0"),
				Name: "Skydeath",
			},
		},
		{
			name:     "Uppercase id",
			response: []byte(`{"name":"mwmy","id":"5438ED1A48ED4086A5A77912CA2BF1EE"}`),
			expected: domain.PlayerIdentity{
				UUID: uuid.MustParse("5438ed1a-48ed-4086-a5a7-7912ca2bf1ee"),
				Name: "mwmy",
			},
		},
		{
			name:     "Dashed id",
			response: []byte(`{"name":"mwmy","id":"5438ed1a-48ed-4086-a5a7-7912ca2bf1ee"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Dashes padding a short id",
			response: []byte(`{"name":"mwmy","id":"5438ed1a48ed4086a5a77912ca2bf1-e"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Uppercase keys",
			response: []byte(`{"NAME":"Timmi6790","ID":"9d59daad6f624bd9b13ec961bf906750"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null",
			response: []byte(`null`),
			err:      domain.ErrParse,
		},
		{
			name:     "Missing name",
			response: []byte(`{"id":"9b8ae1f3f0a84e7fbcd8bd42ffb5ba9b"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Missing id",
			response: []byte(`{"name":"Timmi6790"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null id",
			response: []byte(`{"name":"Timmi6790","id":null}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Invalid id",
			response: []byte(`{"name":"Timmi6790","id":"not-a-uuid"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Wrong type for name",
			response: []byte(`{"name":123,"id":"9b8ae1f3f0a84e7fbcd8bd42ffb5ba9b"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Array",
			response: []byte(`[]`),
			err:      domain.ErrParse,
		},
		{
			name:     "Invalid JSON",
			response: []byte(`{"id":"invalid-json"`),
			err:      domain.ErrParse,
		},
		{
			name:     "Empty response",
			response: []byte(``),
			err:      domain.ErrParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := parseIdentity(tc.response)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expected, identity)
		})
	}
}

func TestParseNameHistory(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
		expected []domain.NameHistoryEntry
		err      error
	}{
		{
			name: "Real valid response",
			response: []byte(`[
  {"name":"HappyCat0406"},
  {"name":"Vansqn","changedToAt":1584033056000},
  {"name":"King_BP","changedToAt":1587135232000},
  {"name":"Vansqn","changedToAt":1589732489000},
  {"name":"0hVanny","changedToAt":1608983359000}
]`),
			expected: []domain.NameHistoryEntry{
				{Name: "HappyCat0406"},
				{Name: "Vansqn", ChangedAt: time.UnixMilli(1584033056000).UTC()},
				{Name: "King_BP", ChangedAt: time.UnixMilli(1587135232000).UTC()},
				{Name: "Vansqn", ChangedAt: time.UnixMilli(1589732489000).UTC()},
				{Name: "0hVanny", ChangedAt: time.UnixMilli(1608983359000).UTC()},
			},
		},
		{
			name:     "Single original name",
			response: []byte(`[{"name":"mwmy"}]`),
			expected: []domain.NameHistoryEntry{{Name: "mwmy"}},
		},
		{
			name:     "Empty array",
			response: []byte(`[]`),
			expected: []domain.NameHistoryEntry{},
		},
		{
			name:     "Entry without name",
			response: []byte(`[{"name":"mwmy"},{"changedToAt":1584033056000}]`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null entry",
			response: []byte(`[{"name":"mwmy"},null]`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null",
			response: []byte(`null`),
			err:      domain.ErrParse,
		},
		{
			name:     "Object",
			response: []byte(`{"name":"mwmy"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Uppercase name key",
			response: []byte(`[{"NAME":"mwmy"}]`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null changedToAt is the original name",
			response: []byte(`[{"name":"mwmy","changedToAt":null}]`),
			expected: []domain.NameHistoryEntry{{Name: "mwmy"}},
		},
		{
			name:     "Wrong type for changedToAt",
			response: []byte(`[{"name":"mwmy","changedToAt":"yesterday"}]`),
			err:      domain.ErrParse,
		},
		{
			name:     "Empty response",
			response: []byte(``),
			err:      domain.ErrParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			history, err := parseNameHistory(tc.response)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expected, history)
		})
	}
}

func TestParseStatusMap(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
		expected map[string]domain.ServiceStatus
		err      error
	}{
		{
			name: "Real valid response",
			response: []byte(`[
  {"minecraft.net":"green"},
  {"session.minecraft.net":"red"},
  {"account.mojang.com":"yellow"},
  {"authserver.mojang.com":"green"},
  {"sessionserver.mojang.com":"red"},
  {"api.mojang.com":"green"},
  {"textures.minecraft.net":"green"},
  {"mojang.com":"green"}
]`),
			expected: map[string]domain.ServiceStatus{
				"minecraft.net":            domain.StatusOK,
				"session.minecraft.net":    domain.StatusUnavailable,
				"account.mojang.com":       domain.StatusDegraded,
				"authserver.mojang.com":    domain.StatusOK,
				"sessionserver.mojang.com": domain.StatusUnavailable,
				"api.mojang.com":           domain.StatusOK,
				"textures.minecraft.net":   domain.StatusOK,
				"mojang.com":               domain.StatusOK,
			},
		},
		{
			name:     "Uppercase status names",
			response: []byte(`[{"minecraft.net":"GREEN"},{"mojang.com":"Yellow"}]`),
			expected: map[string]domain.ServiceStatus{
				"minecraft.net": domain.StatusOK,
				"mojang.com":    domain.StatusDegraded,
			},
		},
		{
			name:     "Unknown status is dropped",
			response: []byte(`[{"minecraft.net":"green"},{"mojang.com":"purple"}]`),
			expected: map[string]domain.ServiceStatus{
				"minecraft.net": domain.StatusOK,
			},
		},
		{
			name:     "Multiple services in one object",
			response: []byte(`[{"minecraft.net":"green","mojang.com":"red"}]`),
			expected: map[string]domain.ServiceStatus{
				"minecraft.net": domain.StatusOK,
				"mojang.com":    domain.StatusUnavailable,
			},
		},
		{
			name:     "Empty array",
			response: []byte(`[]`),
			expected: map[string]domain.ServiceStatus{},
		},
		{
			name:     "Object",
			response: []byte(`{"minecraft.net":"green"}`),
			err:      domain.ErrParse,
		},
		{
			name:     "Null",
			response: []byte(`null`),
			err:      domain.ErrParse,
		},
		{
			name:     "Non-string status is dropped",
			response: []byte(`[{"a.mojang.com":"green"},{"b.mojang.com":1}]`),
			expected: map[string]domain.ServiceStatus{
				"a.mojang.com": domain.StatusOK,
			},
		},
		{
			name:     "Null and object statuses are dropped",
			response: []byte(`[{"a.mojang.com":null},{"b.mojang.com":{"status":"green"}},{"c.mojang.com":"red"}]`),
			expected: map[string]domain.ServiceStatus{
				"c.mojang.com": domain.StatusUnavailable,
			},
		},
		{
			name:     "Invalid JSON",
			response: []byte(`[{"minecraft.net":"green"}`),
			err:      domain.ErrParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			statuses, err := parseStatusMap(tc.response)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expected, statuses)
		})
	}
}

func TestParseBlockedServers(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []string
	}{
		{
			name:     "Trailing newline",
			response: "6f2520f8bd70a718c568ab5274c56bdbbfc14ef4\n7ea72de5f8e70a2ac45f1aa17d43f0ca3cddeedd\n",
			expected: []string{
				"6f2520f8bd70a718c568ab5274c56bdbbfc14ef4",
				"7ea72de5f8e70a2ac45f1aa17d43f0ca3cddeedd",
			},
		},
		{
			name:     "No trailing newline",
			response: "6f2520f8bd70a718c568ab5274c56bdbbfc14ef4\n7ea72de5f8e70a2ac45f1aa17d43f0ca3cddeedd",
			expected: []string{
				"6f2520f8bd70a718c568ab5274c56bdbbfc14ef4",
				"7ea72de5f8e70a2ac45f1aa17d43f0ca3cddeedd",
			},
		},
		{
			name:     "Carriage returns and padding",
			response: "  abc\r\ndef  \r\n\r\n",
			expected: []string{"abc", "def"},
		},
		{
			name:     "Empty lines in the middle are kept",
			response: "abc\n\ndef\n",
			expected: []string{"abc", "", "def"},
		},
		{
			name:     "Empty body",
			response: "",
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, parseBlockedServers([]byte(tc.response)))
		})
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		noContent  noContentHandling
		err        error
	}{
		{statusCode: 200},
		{statusCode: 201},
		{statusCode: 299},
		{statusCode: 204, noContent: noContentIsSuccess},
		{statusCode: 204, noContent: noContentIsNotFound, err: domain.ErrNotFound},
		{statusCode: 404, err: domain.ErrNotFound},
		{statusCode: 404, noContent: noContentIsNotFound, err: domain.ErrNotFound},
		{statusCode: 429, err: domain.ErrTemporarilyUnavailable},
		{statusCode: 503, err: domain.ErrTemporarilyUnavailable},
		{statusCode: 504, err: domain.ErrTemporarilyUnavailable},
		{statusCode: 301, err: assert.AnError},
		{statusCode: 400, err: assert.AnError},
		{statusCode: 500, err: assert.AnError},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d %t", tc.statusCode, tc.noContent), func(t *testing.T) {
			err := checkStatus(tc.statusCode, tc.noContent)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrHTTPStatus)
			if !errors.Is(tc.err, assert.AnError) {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}
