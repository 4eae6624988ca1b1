package models

// 회원 사용자 모델
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar"`
	Gender       string `json:"gender"`
	Bio          string `json:"bio"`
}

// 세션에 보관하는 사용자 정보 (비밀번호 제외)
type SessionUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// UserUpdate holds the columns to change; nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	PasswordHash *string
	Avatar       *string
	Bio          *string
}

// Session returns the session-resident copy of u.
func (u User) Session() *SessionUser {
	return &SessionUser{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Bio:    u.Bio,
	}
}
