package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketComparisonStrictest(t *testing.T) {
	c := MarketComparison{
		Rows: []ComparisonRow{
			{Market: MarketUS, Status: StatusListed},
			{Market: MarketEU, Status: StatusAuthorizationRequired},
			{Market: MarketTW, Status: StatusRestricted},
		},
	}

	strictest := c.Strictest()
	require.NotNil(t, strictest)
	assert.Equal(t, MarketEU, strictest.Market)
	assert.Equal(t, StatusAuthorizationRequired, strictest.Status)
}

func TestMarketComparisonStrictestEmpty(t *testing.T) {
	var c MarketComparison
	assert.Nil(t, c.Strictest())
}

func TestMarketComparisonStrictestUnknownLoses(t *testing.T) {
	// A market with no data must never be reported as the strictest.
	c := MarketComparison{
		Rows: []ComparisonRow{
			{Market: MarketTW, Status: StatusUnknown},
			{Market: MarketUS, Status: StatusNotListed},
		},
	}

	strictest := c.Strictest()
	require.NotNil(t, strictest)
	assert.Equal(t, MarketUS, strictest.Market)
}
