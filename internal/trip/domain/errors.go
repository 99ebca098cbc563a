package domain

import "errors"

var (
	// ErrTripNotFound возвращается когда заявка не найдена
	ErrTripNotFound = errors.New("trip request not found")

	// ErrMissingLocation возвращается при заявке без адресов подачи/назначения
	ErrMissingLocation = errors.New("pickup and dropoff locations are required")

	// ErrNegativeCost возвращается при отрицательной стоимости
	ErrNegativeCost = errors.New("total cost must be >= 0")

	// ErrMissingContact — у гостевой заявки нет ни email, ни телефона, ни имени
	ErrMissingContact = errors.New("guest trip request needs email or phone")

	// ErrUnauthorized возвращается при отсутствии прав на операцию
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDriverNotAvailable возвращается когда водитель не может принять заявку
	ErrDriverNotAvailable = errors.New("driver is not available")

	// ErrCustomerNotResolved — снимок каталога еще не видел эту заявку
	ErrCustomerNotResolved = errors.New("customer not resolved for this trip yet")
)
