package domain

import (
	"fmt"
	"sort"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// Resolution — результат одного прогона Resolve.
type Resolution struct {
	Directory *Directory
	// Attribution — trip id -> ключ клиента. Каждая корректная заявка
	// относится ровно к одному клиенту.
	Attribution map[string]string
	Diagnostics []Diagnostic
}

// Resolve строит каталог клиентов из ПОЛНЫХ текущих наборов аккаунтов и
// заявок. Чистая функция: каталог собирается заново при каждом вызове,
// поэтому идемпотентность и детерминизм выполняются по построению —
// никакого разделяемого состояния, которое мутируется во время обхода.
//
// Порядок обработки фиксирован и несущий:
//  1. seed pass — аккаунты по возрастанию createdAt (tie-break: id);
//  2. merge pass — заявки по возрастанию createdAt (tie-break: id);
//     поздние заявки вливаются в личности, установленные ранними.
func Resolve(accounts []account.Account, trips []tripdomain.TripRequest) Resolution {
	dir := NewDirectory()
	attribution := make(map[string]string, len(trips))
	var diags []Diagnostic

	// 1. Seed pass: каждый не-служебный аккаунт становится клиентом
	// с ключом account.id.
	seeds := make([]account.Account, len(accounts))
	copy(seeds, accounts)
	sort.SliceStable(seeds, func(i, j int) bool {
		if !seeds[i].CreatedAt.Equal(seeds[j].CreatedAt) {
			return seeds[i].CreatedAt.Before(seeds[j].CreatedAt)
		}
		return seeds[i].ID < seeds[j].ID
	})

	for i := range seeds {
		a := &seeds[i]
		if a.ID == "" {
			diags = append(diags, Diagnostic{
				Kind:   DiagMalformedRecord,
				Detail: "account without id skipped",
			})
			continue
		}
		if a.IsStaff() {
			continue
		}
		dir.put(&Customer{
			Key:            a.ID,
			Email:          NormalizeEmail(a.Email),
			Phone:          NormalizePhone(a.Phone),
			DisplayName:    a.DisplayName,
			FirstSeenAt:    a.CreatedAt,
			LastActivityAt: a.CreatedAt,
			SourceTag:      model.SourceRegistered,
		})
	}

	// 2. Merge pass.
	reqs := make([]tripdomain.TripRequest, len(trips))
	copy(reqs, trips)
	sort.SliceStable(reqs, func(i, j int) bool {
		if !reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
		}
		return reqs[i].ID < reqs[j].ID
	})

	for i := range reqs {
		t := &reqs[i]
		if !t.IsWellFormed() {
			diags = append(diags, Diagnostic{
				Kind:     DiagMalformedRecord,
				RecordID: t.ID,
				Detail:   "trip request missing id, locations or valid cost",
			})
			continue
		}

		email := NormalizeEmail(t.Email)
		phone := NormalizePhone(t.Phone)

		// (a) авторизованная заявка: прямое попадание по account id
		if t.AccountID != "" {
			if c, ok := dir.lookup(t.AccountID); ok {
				mergeInto(c, t, email, phone)
				attribution[t.ID] = c.Key
				continue
			}
		}

		// (b) поиск по нормализованным email/phone в порядке вставки.
		// Email-скан предшествует phone-скану; при конфликте побеждает
		// email — зафиксированное поведение, не "исправляем" молча.
		var emailHit, phoneHit *Customer
		if email != "" {
			for _, k := range dir.keys {
				if dir.byKey[k].Email == email {
					emailHit = dir.byKey[k]
					break
				}
			}
		}
		if phone != "" {
			for _, k := range dir.keys {
				if dir.byKey[k].Phone == phone {
					phoneHit = dir.byKey[k]
					break
				}
			}
		}

		if emailHit != nil && phoneHit != nil && emailHit.Key != phoneHit.Key {
			diags = append(diags, Diagnostic{
				Kind:     DiagAmbiguousMatch,
				RecordID: t.ID,
				Detail: fmt.Sprintf("email matches customer %q, phone matches customer %q; email match wins",
					emailHit.Key, phoneHit.Key),
			})
		}

		hit := emailHit
		if hit == nil {
			hit = phoneHit
		}
		if hit != nil {
			mergeInto(hit, t, email, phone)
			attribution[t.ID] = hit.Key
			continue
		}

		// (c) новая гостевая личность
		key := email
		if key == "" {
			key = phone
		}
		if key == "" {
			key = "trip:" + t.ID
		}
		dir.put(&Customer{
			Key:            key,
			Email:          email,
			Phone:          phone,
			DisplayName:    t.RequesterName(),
			FirstSeenAt:    t.CreatedAt,
			LastActivityAt: t.CreatedAt,
			SourceTag:      model.SourceGuest,
		})
		attribution[t.ID] = key
	}

	return Resolution{
		Directory:   dir,
		Attribution: attribution,
		Diagnostics: diags,
	}
}

// mergeInto вливает поля заявки в существующего клиента.
// Правило fill-only-if-empty: непустые поля никогда не перезаписываются.
//
// sourceTag эскалирует в merged только при склейке сигналов из разных
// каналов: заявка влилась в registered-клиента, либо заявка с accountId
// влилась в гостевую личность. Гость, совпавший с гостем по тому же
// email/phone, остается guest. Обратной эскалации не бывает.
func mergeInto(c *Customer, t *tripdomain.TripRequest, email, phone string) {
	if c.Email == "" {
		c.Email = email
	}
	if c.Phone == "" {
		c.Phone = phone
	}
	if c.DisplayName == "" {
		c.DisplayName = t.RequesterName()
	}
	if t.CreatedAt.After(c.LastActivityAt) {
		c.LastActivityAt = t.CreatedAt
	}
	if t.CreatedAt.Before(c.FirstSeenAt) {
		c.FirstSeenAt = t.CreatedAt
	}

	switch c.SourceTag {
	case model.SourceRegistered:
		c.SourceTag = model.SourceMerged
	case model.SourceGuest:
		if t.AccountID != "" {
			c.SourceTag = model.SourceMerged
		}
	}
}
