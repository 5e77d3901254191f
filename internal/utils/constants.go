package utils

// Query parameter defaults, matching the public API contract.
const (
	DEFAULT_PAGE      = 1
	DEFAULT_PAGE_SIZE = 10
	DEFAULT_RADIUS_KM = 5.0
	DEFAULT_UNIT      = "km"
)
