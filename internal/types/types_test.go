package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in      string
		want    Condition
		wantErr bool
	}{
		{"", ConditionAbove, false},
		{"above", ConditionAbove, false},
		{"below", ConditionBelow, false},
		{"sideways", "", true},
		{"ABOVE", "", true},
	}

	for _, tc := range cases {
		got, err := ParseCondition(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestTriggeredIsNonStrict(t *testing.T) {
	above := Rule{Asset: "eth", Target: 2000, Condition: ConditionAbove}
	require.True(t, above.Triggered(2000))
	require.True(t, above.Triggered(2000.01))
	require.False(t, above.Triggered(1999.99))

	below := Rule{Asset: "eth", Target: 2000, Condition: ConditionBelow}
	require.True(t, below.Triggered(2000))
	require.True(t, below.Triggered(1999.99))
	require.False(t, below.Triggered(2000.01))
}
