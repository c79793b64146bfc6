package models

// Account types
const (
	AccountTypeLive          = "Live"
	AccountTypeDemo          = "Demo"
	AccountTypeBacktesting   = "Backtesting"
	AccountTypePropChallenge = "Prop Firm Challenge"
	AccountTypePropFunded    = "Prop Funded/Live"
)

// Drawdown policies
const (
	DrawdownStatic   = "static"
	DrawdownTrailing = "trailing"
)

// Trade sides
const (
	SideLong  = "Long"
	SideShort = "Short"
)

// AccountTypes lists every valid account type.
var AccountTypes = []string{
	AccountTypeLive,
	AccountTypeDemo,
	AccountTypeBacktesting,
	AccountTypePropChallenge,
	AccountTypePropFunded,
}

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t string) bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidSide reports whether s is a known trade side.
func ValidSide(s string) bool {
	return s == SideLong || s == SideShort
}

// ValidDrawdownType reports whether d is a known drawdown policy.
func ValidDrawdownType(d string) bool {
	return d == DrawdownStatic || d == DrawdownTrailing
}
