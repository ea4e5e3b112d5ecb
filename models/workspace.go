package models

// Workspace is a tenant partition: one row per physical store. The set is
// fixed; rows are seeded at startup and only their settings are editable.
type Workspace struct {
	ID                    string `gorm:"size:20;primary_key" json:"id"`
	Name                  string `gorm:"not null" json:"name"`
	Phone                 string `gorm:"size:20" json:"phone"` // WhatsApp number, digits with country code
	WhatsAppNotifications bool   `gorm:"default:true" json:"whatsappNotifications"`
}

// DefaultWorkspaces returns the seed rows for the known stores.
func DefaultWorkspaces() []Workspace {
	return []Workspace{
		{ID: string(StoreA), Name: "Loja A - Centro", Phone: "5511999990001"},
		{ID: string(StoreB), Name: "Loja B - Shopping", Phone: "5511999990002"},
	}
}

// ValidWorkspace reports whether id names one of the known stores.
func ValidWorkspace(id string) bool {
	return id == string(StoreA) || id == string(StoreB)
}
