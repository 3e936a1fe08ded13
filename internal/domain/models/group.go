package models

type CreateGroup struct {
	Name string `json:"name" validate:"required"`
}
