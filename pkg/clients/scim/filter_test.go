package scim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

func TestFilterComparison(t *testing.T) {
	tests := []struct {
		name     string
		input    scim.FilterExpression
		expected string
	}{
		{
			name: "Equal operator",
			input: scim.FilterComparison{
				Attribute: "userName",
				Operator:  scim.FilterOperatorEqual,
				Value:     "John",
			},
			expected: `userName eq "John"`,
		},
		{
			name: "Contains operator",
			input: scim.FilterComparison{
				Attribute: "title",
				Operator:  scim.FilterOperatorContains,
				Value:     "engineer",
			},
			expected: `title co "engineer"`,
		},
		{
			name: "Starts With operator",
			input: scim.FilterComparison{
				Attribute: "displayName",
				Operator:  scim.FilterOperatorStartsWith,
				Value:     "Sla",
			},
			expected: `displayName sw "Sla"`,
		},
		{
			name: "Greater operator",
			input: scim.FilterComparison{
				Attribute: "meta.created",
				Operator:  scim.FilterOperatorGreater,
				Value:     "2020-01-01T00:00:00Z",
			},
			expected: `meta.created gt "2020-01-01T00:00:00Z"`,
		},
		{
			name: "Quotes are escaped",
			input: scim.FilterComparison{
				Attribute: "displayName",
				Operator:  scim.FilterOperatorEqual,
				Value:     `The "A" \ Team`,
			},
			expected: `displayName eq "The \"A\" \\ Team"`,
		},
		{
			name:     "Present operator",
			input:    scim.FilterPresent{Attribute: "title"},
			expected: `title pr`,
		},
		{
			name: "And Single expression",
			input: scim.FilterLogicalGroupAnd{
				Expressions: []scim.FilterExpression{
					scim.FilterComparison{
						Attribute: "userName",
						Operator:  scim.FilterOperatorEqual,
						Value:     "John",
					},
				},
			},
			expected: `(userName eq "John")`,
		},
		{
			name: "Or Multiple expressions",
			input: scim.FilterLogicalGroupOr{
				Expressions: []scim.FilterExpression{
					scim.FilterComparison{
						Attribute: "userName",
						Operator:  scim.FilterOperatorEqual,
						Value:     "John",
					},
					scim.FilterComparison{
						Attribute: "userName",
						Operator:  scim.FilterOperatorEqual,
						Value:     "Jane",
					},
				},
			},
			expected: `(userName eq "John" or userName eq "Jane")`,
		},
		{
			name: "Combination expression",
			input: scim.FilterLogicalGroupAnd{
				Expressions: []scim.FilterExpression{
					scim.FilterPresent{Attribute: "title"},
					scim.FilterLogicalGroupOr{
						Expressions: []scim.FilterExpression{
							scim.FilterComparison{
								Attribute: "displayName",
								Operator:  scim.FilterOperatorStartsWith,
								Value:     "A",
							},
							scim.FilterComparison{
								Attribute: "displayName",
								Operator:  scim.FilterOperatorStartsWith,
								Value:     "B",
							},
						},
					},
				},
			},
			expected: `(title pr and (displayName sw "A" or displayName sw "B"))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}
