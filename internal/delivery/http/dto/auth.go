package dto

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"fullName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TFACodeRequest struct {
	Code string `json:"code"`
}

type TFAAuthenticateRequest struct {
	TFAToken string `json:"tfaToken"`
	Code     string `json:"code"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}

// LoginResponse carries either tokens or, when TFA is on, a TFA token to
// exchange at /auth/tfa/authenticate.
type LoginResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	TFARequired  bool          `json:"tfaRequired"`
	TFAToken     string        `json:"tfaToken,omitempty"`
}

type TFASecretResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
}
