package common

const (
	RedisKeyDispatch        = "scanner:dispatch:%s"
	RedisKeyDispatchRecords = "scanner:dispatch:records"

	// GlobalMarketTarget is the pseudo instrument used for market-wide alerts.
	GlobalMarketTarget = "GLOBAL MARKET"

	DefaultRecipient = "SMS USER"

	DateLayout = "2006-01-02"
)
