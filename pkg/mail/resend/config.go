package resend

// Config holds Resend transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey    string `env:"RESEND_API_KEY,required"`
	FromEmail string `env:"RESEND_FROM_EMAIL,required"`
	FromName  string `env:"RESEND_FROM_NAME"`
}
