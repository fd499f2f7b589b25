package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Rate limiting for public registration endpoints
const (
	RateLimitPerHour   = 5
	RateLimitPerDay    = 10
	RateLimitHourWindow = time.Hour
	RateLimitDayWindow  = 24 * time.Hour
)

// Registration form bounds
const (
	NameMinLength      = 2
	PhoneMinLength     = 5
	IndividualAgeMin   = 3
	IndividualAgeMax   = 110
	TeamMemberAgeMin   = 16
	TeamMemberAgeMax   = 99
	ChildAgeMin        = 1
	ChildAgeMax        = 9
	ChildAgeThreshold  = 10 // below this a participant is registered as a child
)

// Rate limiter operation names
const (
	OpRegisterIndividual = "register_individual"
	OpRegisterTeam       = "register_team"
	OpRegisterChildren   = "register_children"
)

// Timeslot defaults
const (
	ChildrenTimeslotName     = "Kinderlauf"
	ChildrenTimeslotTime     = "10:00"
	ChildrenTimeslotCapacity = 200
)

// Asynq
const (
	QueueMail = "mail"
)
