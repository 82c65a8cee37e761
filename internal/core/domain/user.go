package domain

type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// AuthSession — результат входа: пользователь и его access token,
// который клиент передает в заголовке Authorization
type AuthSession struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}
