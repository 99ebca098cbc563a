package model

// ==== Roles ====
const (
	RoleCustomer = "CUSTOMER"
	RoleDriver   = "DRIVER"
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// ==== Account Status ====
const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusInactive = "INACTIVE"
	AccountStatusBanned   = "BANNED"
)

// ==== Trip Status ====
// Значения в нижнем регистре — так они хранятся в БД и уходят клиентам.
const (
	TripStatusAwaitingPayment = "awaiting_payment"
	TripStatusPending         = "pending"
	TripStatusConfirmed       = "confirmed"
	TripStatusDriverAssigned  = "driver_assigned"
	TripStatusDriverEnRoute   = "driver_en_route"
	TripStatusInProgress      = "in_progress"
	TripStatusCompleted       = "completed"
	TripStatusCancelled       = "cancelled"
)

// ==== Customer Source Tag ====
const (
	SourceRegistered = "registered"
	SourceGuest      = "guest"
	SourceMerged     = "merged"
)

// ==== Driver Availability ====
const (
	DriverStatusOffline   = "OFFLINE"
	DriverStatusAvailable = "AVAILABLE"
	DriverStatusBusy      = "BUSY"
)

// ==== Event Types ====
const (
	EventAccountCreated      = "ACCOUNT_CREATED"
	EventTripRequested       = "TRIP_REQUESTED"
	EventTripStatusChanged   = "TRIP_STATUS_CHANGED"
	EventTripAssignmentOffer = "TRIP_ASSIGNMENT_OFFERED"
	EventTripCompleted       = "TRIP_COMPLETED"
	EventTripCancelled       = "TRIP_CANCELLED"
	EventPaymentConfirmed    = "PAYMENT_CONFIRMED"
	EventDriverResponse      = "DRIVER_RESPONSE"
)

// ==== AMQP Routing Keys ====
const (
	RKAccountCreated    = "account.created"
	RKTripRequested     = "trip.requested"
	RKTripStatusChanged = "trip.status_changed"
	RKTripAssignment    = "trip.assignment_offered"
	RKPaymentConfirmed  = "payment.confirmed"
	RKDriverResponse    = "driver.response"
)
