package handler

import "github.com/SinghShreyansh/users-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createUserRequest is the body of POST /users.
// password accepts a JSON number or a numeric string.
type createUserRequest struct {
	Name     string          `json:"name"`
	Password domain.Password `json:"password" swaggertype:"string" example:"1234"`
}

// updateUserRequest is the body of PUT /users. id may also come from the query string.
type updateUserRequest struct {
	ID       string          `json:"id"       query:"id"`
	Name     string          `json:"name"`
	Password domain.Password `json:"password" swaggertype:"string" example:"1234"`
}

// deleteUserRequest carries the id of DELETE /users, from the query string or body.
type deleteUserRequest struct {
	ID string `json:"id" query:"id"`
}

// userResponse documents the projection rendered for every user.
// Handlers return domain.Projection directly; this type exists for the API docs.
type userResponse struct {
	ID       string `json:"id"       example:"65f1c2a4e4b0a1b2c3d4e5f6"`
	Name     string `json:"name"     example:"Shreyansh"`
	Password any    `json:"password" swaggertype:"string" example:"1234"`
}
