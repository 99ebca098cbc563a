package domain

import "time"

// Snapshot — согласованный срез каталога и статистики, публикуемый всем
// наблюдателям. Не мутируется после создания: каждый пересчет производит
// новый снимок, который атомарно замещает предыдущий.
type Snapshot struct {
	Directory   *Directory               `json:"-"`
	Customers   []Customer               `json:"customers"` // порядок вставки
	Stats       map[string]CustomerStats `json:"stats"`
	Global      GlobalStats              `json:"global"`
	Diagnostics []Diagnostic             `json:"diagnostics,omitempty"`
	ComputedAt  time.Time                `json:"computed_at"`
}
