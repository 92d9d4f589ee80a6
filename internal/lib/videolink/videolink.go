// Package videolink проверяет ссылки на видеоматериалы уроков.
// Платформа размещает видео только на youtube.com, ссылки на сторонние
// видеохостинги отклоняются до записи в базу.
package videolink

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidLink возвращается, когда ссылка не ведёт на разрешённый видеохостинг.
var ErrInvalidLink = errors.New("link is not valid")

// allowedHost — единственный разрешённый видеохостинг.
const allowedHost = "youtube.com"

// Validate проверяет, что link — корректный URL на разрешённый видеохостинг.
// Пустая ссылка допустима: видео у урока может отсутствовать.
func Validate(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return ErrInvalidLink
	}
	host := u.Hostname()
	if host == allowedHost || strings.HasSuffix(host, "."+allowedHost) {
		return nil
	}
	return ErrInvalidLink
}
