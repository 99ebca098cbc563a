package domain

// Diagnostic kinds
const (
	DiagMalformedRecord = "malformed_record"
	DiagAmbiguousMatch  = "ambiguous_match"
)

// Diagnostic — нефатальная проблема, обнаруженная при пересчете.
// Битые записи пропускаются, неоднозначные совпадения разрешаются
// детерминированно; и то и другое всплывает здесь для последующей
// ручной сверки, пересчет никогда не прерывается.
type Diagnostic struct {
	Kind     string `json:"kind"`      // malformed_record | ambiguous_match
	RecordID string `json:"record_id"` // id аккаунта или заявки
	Detail   string `json:"detail"`
}
