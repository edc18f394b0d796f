package dto

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type ActiveUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}
