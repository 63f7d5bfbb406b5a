package usecase

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
)

// customCodeRe задаёт политику пользовательских кодов: 3–20 символов,
// латиница, цифры и дефис
var customCodeRe = regexp.MustCompile(`^[A-Za-z0-9-]{3,20}$`)

// validateTargetURL проверяет, что строка является абсолютным URL с разрешённым
// протоколом и в пределах лимита длины
func (u *LinkUsecase) validateTargetURL(raw string) (model.URL, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidInput)
	}
	if len(raw) > u.cfg.Link.MaxURLLength {
		return "", fmt.Errorf("%w: URL exceeds %d characters", ErrInvalidInput, u.cfg.Link.MaxURLLength)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed URL", ErrInvalidInput)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: protocol %q is not allowed", ErrInvalidInput, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: URL must be absolute", ErrInvalidInput)
	}

	return model.URL(raw), nil
}

// validateCustomCode проверяет пользовательский код по политике charset/длины
func validateCustomCode(code string) (model.Code, error) {
	if !customCodeRe.MatchString(code) {
		return "", fmt.Errorf("%w: custom code must be 3-20 alphanumeric or hyphen characters", ErrInvalidInput)
	}
	return model.Code(code), nil
}

// computeExpiry вычисляет expiresAt один раз, на момент вызова.
// Позже срок не перевычисляется.
func (u *LinkUsecase) computeExpiry(expiresIn *int, now time.Time) (*time.Time, error) {
	if expiresIn == nil {
		return nil, nil
	}

	days := *expiresIn
	if days < 1 || days > u.cfg.Link.MaxExpiryDays {
		return nil, fmt.Errorf("%w: expiresIn must be between 1 and %d days", ErrInvalidInput, u.cfg.Link.MaxExpiryDays)
	}

	expiresAt := now.AddDate(0, 0, days)
	return &expiresAt, nil
}
