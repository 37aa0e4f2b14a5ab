package domain

import "strings"

// Market identifies a regulatory jurisdiction.
type Market string

// Supported markets.
const (
	// MarketEU is the European Union (REACH, ECHA inventory).
	MarketEU Market = "EU"

	// MarketTW is Taiwan (CSCRA, MOENV toxic chemical list).
	MarketTW Market = "TW"

	// MarketUS is the United States (TSCA, 40 CFR).
	MarketUS Market = "US"

	// MarketGlobal means all supported jurisdictions at once.
	MarketGlobal Market = "GLOBAL"
)

// IsValid returns true if the market is recognised.
func (m Market) IsValid() bool {
	switch m {
	case MarketEU, MarketTW, MarketUS, MarketGlobal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Market) String() string {
	return string(m)
}

// Description returns a human-readable description of the market.
func (m Market) Description() string {
	switch m {
	case MarketEU:
		return "European Union"
	case MarketTW:
		return "Taiwan"
	case MarketUS:
		return "United States"
	case MarketGlobal:
		return "All jurisdictions"
	default:
		return "Unknown"
	}
}

// AllMarkets returns the concrete jurisdictions, excluding GLOBAL.
func AllMarkets() []Market {
	return []Market{MarketEU, MarketTW, MarketUS}
}

// ParseMarket normalises a user-supplied market string.
// Accepts ISO-style codes and common names in any case.
// Returns ErrMarketUnsupported for anything unrecognised.
func ParseMarket(s string) (Market, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EU", "EUROPE", "EUROPEAN UNION":
		return MarketEU, nil
	case "TW", "TAIWAN":
		return MarketTW, nil
	case "US", "USA", "UNITED STATES":
		return MarketUS, nil
	case "GLOBAL", "ALL", "WORLD", "WORLDWIDE":
		return MarketGlobal, nil
	default:
		return "", ErrMarketUnsupported
	}
}

// Expand resolves GLOBAL to the concrete jurisdiction list.
// Concrete markets expand to themselves.
func (m Market) Expand() []Market {
	if m == MarketGlobal {
		return AllMarkets()
	}
	return []Market{m}
}
