package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdownV2(t *testing.T) {
	require.Equal(t, `1\.5 BTC \(cold wallet\)`, escapeMarkdownV2("1.5 BTC (cold wallet)"))
	require.Equal(t, "plain text", escapeMarkdownV2("plain text"))
}

func TestFormatPriceUS(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{68123.4, "68,123"},
		{1999.99, "2,000"},
		{42.5, "42.50"},
		{0.55, "0.550000"},
		{0.0000042, "0.00000420"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, formatPriceUS(tc.price, false), "price %v", tc.price)
	}
}
