package config

// APIConfig enables the braking HTTP API when Address is set.
type APIConfig struct {
	Address string `json:"address"`
	// Token, when set, is required as "Authorization: Bearer <token>".
	Token string `json:"token"`
}
