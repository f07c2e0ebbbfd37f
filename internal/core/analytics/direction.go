// internal/core/analytics/direction.go
package analytics

import "strings"

// MovementDirection is the normalized direction of a warehouse
// transaction.
type MovementDirection int

const (
	DirectionUnknown MovementDirection = iota
	DirectionIn
	DirectionOut
)

// Direction classifies a free-text transaction type. The raw value is
// uppercased and scanned for marker tokens: inbound markers first, then
// outbound. Values matching neither vocabulary stay unknown and are
// excluded from directional totals; callers count them so operators can
// detect drift in the upstream type vocabulary.
func Direction(raw string, cfg Config) MovementDirection {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return DirectionUnknown
	}

	for _, marker := range cfg.inboundMarkers() {
		if strings.Contains(normalized, strings.ToUpper(marker)) {
			return DirectionIn
		}
	}
	for _, marker := range cfg.outboundMarkers() {
		if strings.Contains(normalized, strings.ToUpper(marker)) {
			return DirectionOut
		}
	}
	return DirectionUnknown
}

// IsSettled reports whether a free-text payment status marks the order
// as paid. Matching is case-insensitive equality against the configured
// sentinels; it shares Config with Direction because both guard against
// the same localized free-text drift.
func IsSettled(status string, cfg Config) bool {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return false
	}
	for _, sentinel := range cfg.paidStatuses() {
		if strings.EqualFold(trimmed, sentinel) {
			return true
		}
	}
	return false
}
