package model

// 上流APIのユーザープロフィール
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Address        string `json:"address,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	SecondaryEmail string `json:"secondaryEmail,omitempty"`
}

// ログイン結果（token + userのセッションキャッシュに相当）
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
