package user

// User - người dùng của catalog, chỉ dùng để gắn vào audit log.
// Không có credentials.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDTO - response trả về cho client
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Email: u.Email}
}
