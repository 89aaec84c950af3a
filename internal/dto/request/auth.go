package request

type LoginRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=80"`
	Cellphone string `json:"cellphone" validate:"required,min=8,max=20"`
}

type CreateAdminRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Cellphone   string `json:"cellphone" validate:"required,min=8,max=20"`
	AdminSecret string `json:"adminSecret" validate:"required"`
}
