package adminapi

// Well-known ids and constants of a standard Shopware installation.
const (
	// SystemCurrencyID is the id of the default (Euro) currency.
	SystemCurrencyID = "b7d2554b0ce847cd82f3ac9bd1c0dfca"

	// SystemLanguageID is the id of the default language.
	SystemLanguageID = "2fbb5fe2e29a4d70aa5854ce7ce3e20b"

	// SalesChannelTypeStorefront is the type id of storefront sales channels.
	SalesChannelTypeStorefront = "8a243080f92e4c719546314b577cf82b"

	// VisibilityAll makes a product fully visible in a sales channel.
	VisibilityAll = 30
)
