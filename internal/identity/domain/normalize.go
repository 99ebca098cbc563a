package domain

import "strings"

// Нормализованные формы — единственная база сравнения при сопоставлении
// личностей; сырые строки никогда не сравниваются напрямую.

// NormalizeEmail приводит email к канонической форме (trim + lower-case).
// Пустой результат означает "email отсутствует".
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone оставляет только цифры и ведущий '+'.
// Пустой результат означает "телефон отсутствует".
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}
