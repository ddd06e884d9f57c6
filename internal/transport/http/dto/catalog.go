package dto

type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NewCategoryDto struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NewUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=250"`
	Email string `json:"email" validate:"required,email,min=6,max=254"`
}
