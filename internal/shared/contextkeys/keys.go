package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "cityseed context key " + string(c)
}

// RunIDKey carries the correlation id of a single seed run.
const RunIDKey = contextKey("runID")

// ComponentKey carries the name of the component handling the request.
const ComponentKey = contextKey("component")

// OperationKey carries the name of the running operation (e.g. "seed", "resolve_country").
const OperationKey = contextKey("operation")

// CountryIDKey carries the hex id of the country being seeded.
const CountryIDKey = contextKey("countryID")
