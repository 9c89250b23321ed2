package models

// FilterDefinition binds a public filter id to the BPS services backing it.
type FilterDefinition struct {
	FilterId                   string
	BpsServiceId               string
	BusinessKey                string
	Format                     PayloadFormat
	UpdateServiceId            string
	ExternalUserCharacteristic string
}

// ServiceIds lists the search service, then the update service when there is one.
func (f FilterDefinition) ServiceIds() []string {
	if f.UpdateServiceId == "" {
		return []string{f.BpsServiceId}
	}
	return []string{f.BpsServiceId, f.UpdateServiceId}
}
