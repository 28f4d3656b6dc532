package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewRecordID returns prefix + "_" + the first 8 hex characters of a fresh
// UUID, uppercased. Matches the record ID scheme the field units and
// dashboard already know (LOG_1A2B3C4D, CTRL_..., PWR_..., ALERT_...,
// CONS_..., ACC_...).
func NewRecordID(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "_" + strings.ToUpper(raw[:8])
}
