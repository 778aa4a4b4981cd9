package transfer

type AssetUpdate struct {
	ID     string    `json:"id"`
	Folder *string   `json:"folder,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}

type PresetCreation struct {
	Name           string   `json:"name"`
	ImageIDs       []string `json:"image_ids"`
	OutputStyle    string   `json:"output_style"`
	AspectRatio    string   `json:"aspect_ratio"`
	ReferenceCount int      `json:"reference_count"`
	UseBrandColors bool     `json:"use_brand_colors"`
}

type GenerationRequest struct {
	Prompt   string `json:"prompt"`
	PresetID string `json:"preset_id"`
}
