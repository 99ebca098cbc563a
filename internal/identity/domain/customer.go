package domain

import (
	"time"
)

// Customer — производная сущность ядра: результат слияния сигналов из
// аккаунтов и заявок. Не хранится во внешней системе, пересчитывается
// заново из полных наборов входных данных.
type Customer struct {
	Key            string    `json:"key"` // account id | normalized email | normalized phone | "trip:"+id
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	SourceTag      string    `json:"source_tag"` // registered | guest | merged
}

// Directory — полный каталог клиентов, key -> Customer.
// Порядок вставки сохраняется: он определяет порядок сканирования при
// сопоставлении и потому несущий (см. Resolve).
type Directory struct {
	keys  []string
	byKey map[string]*Customer
}

// NewDirectory создает пустой каталог
func NewDirectory() *Directory {
	return &Directory{byKey: make(map[string]*Customer)}
}

// Len возвращает число клиентов
func (d *Directory) Len() int {
	return len(d.keys)
}

// Get возвращает копию клиента по ключу
func (d *Directory) Get(key string) (Customer, bool) {
	c, ok := d.byKey[key]
	if !ok {
		return Customer{}, false
	}
	return *c, true
}

// Keys возвращает ключи в порядке вставки
func (d *Directory) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Customers возвращает копии всех клиентов в порядке вставки
func (d *Directory) Customers() []Customer {
	out := make([]Customer, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, *d.byKey[k])
	}
	return out
}

// put добавляет клиента; ключ после вставки неизменяем
func (d *Directory) put(c *Customer) {
	if _, ok := d.byKey[c.Key]; !ok {
		d.keys = append(d.keys, c.Key)
	}
	d.byKey[c.Key] = c
}

// lookup отдает указатель для внутреннего слияния (только во время Resolve)
func (d *Directory) lookup(key string) (*Customer, bool) {
	c, ok := d.byKey[key]
	return c, ok
}
