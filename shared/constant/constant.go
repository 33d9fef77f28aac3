// Package constant holds the names shared across layers: query parameters, headers,
// cache prefixes, span scopes and wire layouts.
package constant

import "time"

type contextKey string

const ContextKeySession contextKey = "session"

// Operator roles carried in the session.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleAgent      = "agent"
)

// Paging and sorting query parameters.
const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Ledger route and query parameters.
const (
	RequestParamID              = "id"
	RequestParamBookingNo       = "no"
	RequestParamDate            = "date"
	RequestParamHotelID         = "hotel_id"
	RequestParamStatusID        = "status_id"
	RequestParamIncludeCanceled = "include_canceled"
	RequestParamSearch          = "search"
	RequestParamCategoryID      = "category_id"
	RequestParamCheckIn         = "check_in"
	RequestParamCheckOut        = "check_out"
	RequestParamName            = "name"
	RequestParamActive          = "active"
	RequestParamLocation        = "location"
	RequestParamTopSelling      = "top_selling"
)

// Audit columns every table carries.
const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat = time.RFC3339
	// DayFormat is the calendar-date layout used on the wire and in inventory lists.
	DayFormat = "2006-01-02"
)

// Tracer scopes, one per layer.
const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderRetryAfter         = "Retry-After"

	ContentTypeJSON = "application/json"
)

// Cache prefixes shared between the services that fill them and the event worker that drops them.
const (
	CachePrefixBooking   = "booking:get"
	CachePrefixBookings  = "booking:gets"
	CachePrefixStatement = "statement:get"
	CachePrefixSummary   = "summary:get"
	CachePrefixDashboard = "dashboard:get"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const Empty = ""
