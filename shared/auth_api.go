package shared

type SignInRequest struct {
	Token string `json:"token"`
}

type SessionResponse struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}
