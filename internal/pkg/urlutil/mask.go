// Package urlutil предоставляет утилиты для безопасного логирования URL.
package urlutil

import "net/url"

// MaskURL оставляет от URL только scheme и host.
// Path, query и userinfo могут содержать токены и не выводятся.
// Пустая строка возвращается как есть: адрес не задан.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	if u.Path == "" && u.RawQuery == "" && u.User == nil {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/***"
}
