package base_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/slack-scim/internal/cmd/base"
	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		initial     scim.Document
		assignments []string
		expected    scim.Document
		expectError bool
	}{
		{
			name:        "Snake case keys become camel case",
			assignments: []string{"user_name=kaz", "external_id=E1", "profile_url=https://example.com"},
			expected: scim.Document{
				"userName":   "kaz",
				"externalId": "E1",
				"profileUrl": "https://example.com",
			},
		},
		{
			name:        "Camel case keys are kept",
			assignments: []string{"displayName=Kaz Sera"},
			expected:    scim.Document{"displayName": "Kaz Sera"},
		},
		{
			name:        "Dotted keys build nested objects",
			assignments: []string{"name.given_name=Kaz", "name.family_name=Sera"},
			expected: scim.Document{
				"name": map[string]any{"givenName": "Kaz", "familyName": "Sera"},
			},
		},
		{
			name:        "Existing nested documents are extended",
			initial:     scim.Document{"name": scim.Document{"givenName": "Kazuhiro"}},
			assignments: []string{"name.given_name=Kaz"},
			expected:    scim.Document{"name": scim.Document{"givenName": "Kaz"}},
		},
		{
			name:        "JSON values are decoded",
			assignments: []string{"active=false", "emails=[{\"value\":\"a@example.com\"}]", "title=42abc"},
			expected: scim.Document{
				"active": false,
				"emails": []any{map[string]any{"value": "a@example.com"}},
				"title":  "42abc",
			},
		},
		{
			name:        "Missing value",
			assignments: []string{"user_name"},
			expectError: true,
		},
		{
			name:        "Missing key",
			assignments: []string{"=kaz"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.initial
			if doc == nil {
				doc = scim.Document{}
			}

			err := base.Apply(doc, tt.assignments)

			if tt.expectError {
				assert.ErrorIs(t, err, base.ErrInvalidAssignment)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc)
		})
	}
}

func TestApplyKeepsNumbers(t *testing.T) {
	doc := scim.Document{}
	require.NoError(t, base.Apply(doc, []string{"count=3"}))
	assert.Equal(t, json.Number("3"), doc["count"])
}
