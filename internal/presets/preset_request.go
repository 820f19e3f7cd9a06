package presets

type PresetItemRequest struct {
	CategoryID     int     `json:"category_id" binding:"required,gte=1"`
	QuantityNeeded int     `json:"quantity_needed" binding:"omitempty,gte=1"`
	Requirements   *string `json:"requirements"`
	Notes          *string `json:"notes"`
}

type PresetRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	Items       []PresetItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdatePresetRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Description *string             `json:"description"`
	Items       []PresetItemRequest `json:"items" binding:"omitempty,dive"`
}

type MassWithdrawRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Purpose  string `json:"purpose" binding:"required"`
}
