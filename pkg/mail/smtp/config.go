package smtp

import (
	"errors"
	"fmt"

	"github.com/stanac/mdmail/pkg/mail"
)

// ErrInvalidConfig indicates the SMTP configuration is incomplete.
var ErrInvalidConfig = errors.New("smtp: invalid configuration")

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host      string `env:"SMTP_HOST,required"`
	Port      int    `env:"SMTP_PORT" envDefault:"587"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromName  string `env:"SMTP_FROM_NAME"`
	FromEmail string `env:"SMTP_FROM_EMAIL,required"`

	// UseSSL dials with implicit TLS (typically port 465). When false the
	// connection starts in plaintext and upgrades via STARTTLS if the
	// server advertises it.
	UseSSL bool `env:"SMTP_SSL"`

	// InsecureSkipVerify disables TLS certificate verification. Test
	// servers only.
	InsecureSkipVerify bool `env:"SMTP_TLS_SKIP_VERIFY"`
}

// Validate reports whether the configuration is complete enough to dial.
func (c Config) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("%w: host must be set", ErrInvalidConfig))
	}
	if c.Port < 1 {
		errs = append(errs, fmt.Errorf("%w: port must be greater than 0", ErrInvalidConfig))
	}
	if c.FromEmail == "" {
		errs = append(errs, fmt.Errorf("%w: from email must be set", ErrInvalidConfig))
	} else if err := mail.ValidateAddress(c.FromEmail); err != nil {
		errs = append(errs, fmt.Errorf("%w: from email: %v", ErrInvalidConfig, err))
	}
	if c.Username != "" && c.Password == "" {
		errs = append(errs, fmt.Errorf("%w: password must be set when username is set", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
