package dto

type ProviderStatusDTO struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Available    bool     `json:"available"`
	Priority     int      `json:"priority"`
	DefaultModel string   `json:"default_model"`
	Models       []string `json:"models,omitempty"`
}

type ProviderStatusResponse struct {
	Providers []ProviderStatusDTO `json:"providers"`
}
