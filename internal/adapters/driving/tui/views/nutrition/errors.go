package nutrition

import "errors"

// ErrNoLookupService indicates that no lookup service was provided.
var ErrNoLookupService = errors.New("lookups unavailable: no lookup service")
