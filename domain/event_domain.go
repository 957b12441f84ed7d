package domain

import "time"

const (
	ApprovalApproved  = "approved"
	ApprovalRejected  = "rejected"
	ApprovalCancelled = "cancelled"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPending   = "pending"
	EventStatusApproved  = "approved"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"

	RegistrationStatusRegistered = "registered"
	RegistrationStatusApproved   = "approved"
	RegistrationStatusRejected   = "rejected"
	RegistrationStatusCompleted  = "completed"
	RegistrationStatusCancelled  = "cancelled"
)

var (
	EventCategories = []string{"Education", "Health", "Environment", "Social", "Relief"}

	// ActiveRegistrationStatuses hold a seat on the event.
	ActiveRegistrationStatuses = []string{
		RegistrationStatusRegistered,
		RegistrationStatusApproved,
		RegistrationStatusCompleted,
	}
)

var (
	MessageSuccessGetEvents              = "Events retrieved successfully"
	MessageSuccessGetEvent               = "Event retrieved successfully"
	MessageSuccessCreateEvent            = "Event created successfully"
	MessageSuccessCreateEventPending     = "Event created successfully and is pending approval"
	MessageSuccessUpdateEvent            = "Event updated successfully"
	MessageSuccessUploadEventImage       = "Event image uploaded successfully"
	MessageSuccessRegisterEvent          = "Registered for event successfully"
	MessageSuccessGetRegistrations       = "Registrations retrieved successfully"
	MessageSuccessGetHistory             = "Event history retrieved successfully"
	MessageSuccessApproveEvent           = "Event approval status updated"
	MessageSuccessUpdateRegistration     = "Registration status updated successfully"
	MessageSuccessCompleteEvent          = "Event marked as completed"
	MessageFailedGetEvents               = "Failed to retrieve events"
	MessageFailedCreateEvent             = "Failed to create event"
	MessageFailedUpdateEvent             = "Failed to update event"
	MessageFailedRegisterEvent           = "Failed to register for event"
	MessageFailedApproveEvent            = "Failed to update event approval"
	MessageFailedUpdateRegistrationState = "Failed to update registration status"
	MessageFailedCompleteEvent           = "Failed to complete event"

	ErrEventNotFound           = NewError(KindNotFound, "Event not found")
	ErrEventNotOpen            = NewError(KindRejected, "Event is not open for registration")
	ErrAlreadyRegistered       = NewError(KindRejected, "Already registered for this event")
	ErrEventFull               = NewError(KindRejected, "Event is at full capacity")
	ErrRegistrationNotFound    = NewError(KindNotFound, "Registration not found")
	ErrNotEventOwner           = NewError(KindForbidden, "Not authorized to update this event")
	ErrInvalidEventDate        = NewError(KindInvalid, "Invalid date format")
	ErrEventAlreadyCompleted   = NewError(KindRejected, "Event is already completed")
	ErrNotRegistrationManager  = NewError(KindForbidden, "Forbidden: You cannot update this registration")
	ErrCapacityBelowRegistered = NewError(KindRejected, "Capacity cannot be lower than the number of registered volunteers")
)

type (
	CreateEventRequest struct {
		Title              string   `json:"title" validate:"required,max=200"`
		Description        string   `json:"description" validate:"required,max=2000"`
		Category           string   `json:"category" validate:"required,oneof=Education Health Environment Social Relief"`
		Date               string   `json:"date" validate:"required"`
		StartTime          string   `json:"startTime" validate:"required"`
		EndTime            string   `json:"endTime" validate:"required"`
		Location           string   `json:"location" validate:"required"`
		Image              string   `json:"image" validate:"omitempty,url"`
		Capacity           int      `json:"capacity" validate:"required,min=1"`
		RequiredVolunteers int      `json:"requiredVolunteers" validate:"omitempty,min=0"`
		Impact             string   `json:"impact" validate:"omitempty,max=500"`
		Skills             []string `json:"skills" validate:"omitempty,dive,max=100"`
		Requirements       []string `json:"requirements" validate:"omitempty,dive,max=200"`
	}

	// UpdateEventRequest applies only the fields that are set.
	UpdateEventRequest struct {
		Title              *string  `json:"title" validate:"omitempty,min=1,max=200"`
		Description        *string  `json:"description" validate:"omitempty,min=1,max=2000"`
		Category           *string  `json:"category" validate:"omitempty,oneof=Education Health Environment Social Relief"`
		Date               *string  `json:"date" validate:"omitempty"`
		StartTime          *string  `json:"startTime" validate:"omitempty"`
		EndTime            *string  `json:"endTime" validate:"omitempty"`
		Location           *string  `json:"location" validate:"omitempty,min=1"`
		Image              *string  `json:"image" validate:"omitempty,url"`
		Capacity           *int     `json:"capacity" validate:"omitempty,min=1"`
		RequiredVolunteers *int     `json:"requiredVolunteers" validate:"omitempty,min=0"`
		Impact             *string  `json:"impact" validate:"omitempty,max=500"`
		Skills             []string `json:"skills" validate:"omitempty,dive,max=100"`
		Requirements       []string `json:"requirements" validate:"omitempty,dive,max=200"`
	}

	EventFilter struct {
		Category string
		Status   string
		Search   string
		PageQuery
	}

	RegisterEventRequest struct {
		EventID string `json:"eventId" validate:"required,uuid"`
	}

	ApproveEventRequest struct {
		ApprovalStatus string `json:"approvalStatus" validate:"required,oneof=approved rejected cancelled"`
	}

	UpdateRegistrationStatusRequest struct {
		Status      string   `json:"status" validate:"required,oneof=registered approved rejected completed cancelled"`
		HoursWorked *float64 `json:"hoursWorked" validate:"omitempty,min=0"`
		Feedback    string   `json:"feedback" validate:"omitempty,max=500"`
		Rating      *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	}

	EventResponse struct {
		ID                   string        `json:"id"`
		Title                string        `json:"title"`
		Description          string        `json:"description"`
		Category             string        `json:"category"`
		Date                 time.Time     `json:"date"`
		StartTime            string        `json:"startTime"`
		EndTime              string        `json:"endTime"`
		Location             string        `json:"location"`
		Image                string        `json:"image,omitempty"`
		Capacity             int           `json:"capacity"`
		RequiredVolunteers   int           `json:"requiredVolunteers"`
		RegisteredCount      int           `json:"registeredCount"`
		RegisteredVolunteers []UserSummary `json:"registeredVolunteers"`
		CreatedBy            *UserSummary  `json:"createdBy,omitempty"`
		Status               string        `json:"status"`
		Impact               string        `json:"impact,omitempty"`
		Skills               []string      `json:"skills"`
		Requirements         []string      `json:"requirements"`
		IsApproved           bool          `json:"isApproved"`
		ApprovedBy           string        `json:"approvedBy,omitempty"`
		ApprovalDate         *time.Time    `json:"approvalDate,omitempty"`
		CreatedAt            time.Time     `json:"createdAt"`
		UpdatedAt            time.Time     `json:"updatedAt"`
	}

	EventsResponse struct {
		Events     []EventResponse `json:"events"`
		Pagination Pagination      `json:"pagination"`
	}

	RegistrationResponse struct {
		ID             string         `json:"id"`
		Volunteer      *UserSummary   `json:"volunteer,omitempty"`
		VolunteerID    string         `json:"volunteerId"`
		Event          *EventResponse `json:"event,omitempty"`
		EventID        string         `json:"eventId"`
		Status         string         `json:"status"`
		HoursWorked    float64        `json:"hoursWorked"`
		Feedback       string         `json:"feedback,omitempty"`
		Rating         *int           `json:"rating,omitempty"`
		ApprovedBy     string         `json:"approvedBy,omitempty"`
		ApprovalDate   *time.Time     `json:"approvalDate,omitempty"`
		CompletionDate *time.Time     `json:"completionDate,omitempty"`
		CreatedAt      time.Time      `json:"createdAt"`
	}

	HistoryResponse struct {
		Registrations []RegistrationResponse `json:"registrations"`
		TotalEvents   int                    `json:"totalEvents"`
		TotalHours    float64                `json:"totalHours"`
	}

	CompleteEventResponse struct {
		Event               EventResponse `json:"event"`
		CompletedVolunteers int           `json:"completedVolunteers"`
	}
)

// IsActiveRegistrationStatus reports whether a registration in status holds a seat.
func IsActiveRegistrationStatus(status string) bool {
	for _, s := range ActiveRegistrationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
