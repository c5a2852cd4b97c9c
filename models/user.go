package models

// User represents a user of the application. Account management lives in a
// separate subsystem; the messenger only ever reads users.
type User struct {
	Model
	Fullname       string `json:"fullname" binding:"required,min=2"`
	Username       string `json:"username" binding:"required,min=2"`
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email"`
	HashedPassword string `json:"-"`
	IsEmployer     bool   `json:"is_employer"`
}

// CompanionResponse is the trimmed user shape shown in inbox entries.
type CompanionResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
}

func (u *User) CompanionResponse() CompanionResponse {
	return CompanionResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Username: u.Username,
	}
}
