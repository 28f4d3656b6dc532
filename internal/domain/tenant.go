package domain

// Tenant one field unit and its owning operator (tenants table).
type Tenant struct {
	TenantID string `db:"tenant_id"` // "ACC_" + 8 hex, PRIMARY KEY

	TenantName   string `db:"tenant_name"`   // VARCHAR(255), NOT NULL
	ContactPhone string `db:"contact_phone"` // VARCHAR(50), nullable
	ContactEmail string `db:"contact_email"` // VARCHAR(255), nullable

	Status string `db:"status"` // VARCHAR(50), DEFAULT 'active' (active/inactive)
}

const (
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
)

// ToJSON converts Tenant to a JSON-friendly map.
func (t *Tenant) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id":     t.TenantID,
		"tenant_name":   t.TenantName,
		"contact_phone": t.ContactPhone,
		"contact_email": t.ContactEmail,
		"status":        t.Status,
	}
}
