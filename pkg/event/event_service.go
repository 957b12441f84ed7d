package event

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/metrics"
	"volunteerhub-backend/internal/utils/storage"
	"volunteerhub-backend/pkg/notification"
	"volunteerhub-backend/pkg/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const eventImageMaxDim = 1280

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type (
	// AdminDirectory lists the users that review manager-created events.
	AdminDirectory interface {
		ListActiveAdmins(ctx context.Context) ([]*entities.User, error)
	}

	EventService interface {
		ListEvents(ctx context.Context, filter domain.EventFilter) (*domain.EventsResponse, error)
		GetEvent(ctx context.Context, eventID string) (*domain.EventResponse, error)
		CreateEvent(ctx context.Context, actor domain.Actor, req domain.CreateEventRequest) (*domain.EventResponse, error)
		UpdateEvent(ctx context.Context, actor domain.Actor, eventID string, req domain.UpdateEventRequest) (*domain.EventResponse, error)
		UploadImage(ctx context.Context, actor domain.Actor, eventID string, file *multipart.FileHeader) (*domain.EventResponse, error)
		Register(ctx context.Context, actor domain.Actor, eventID string) (*domain.RegistrationResponse, error)
		GetUserRegistrations(ctx context.Context, volunteerID string) ([]domain.RegistrationResponse, error)
		GetHistory(ctx context.Context, volunteerID string) (*domain.HistoryResponse, error)
		ApproveEvent(ctx context.Context, actor domain.Actor, eventID string, req domain.ApproveEventRequest) (*domain.EventResponse, error)
		UpdateRegistrationStatus(ctx context.Context, actor domain.Actor, registrationID string, req domain.UpdateRegistrationStatusRequest) (*domain.RegistrationResponse, error)
		CompleteEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.CompleteEventResponse, error)
	}

	eventService struct {
		repo     EventRepository
		admins   AdminDirectory
		notifier notification.Notifier
		s3       storage.AwsS3
		logger   *zap.Logger
		now      func() time.Time
	}
)

func NewEventService(repo EventRepository, admins AdminDirectory, notifier notification.Notifier, s3 storage.AwsS3, logger *zap.Logger) EventService {
	return &eventService{
		repo:     repo,
		admins:   admins,
		notifier: notifier,
		s3:       s3,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) (*domain.EventsResponse, error) {
	filter.PageQuery = filter.PageQuery.Normalize(10)

	events, total, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &domain.EventsResponse{
		Events:     make([]domain.EventResponse, 0, len(events)),
		Pagination: domain.NewPagination(total, filter.PageQuery),
	}
	for _, e := range events {
		res.Events = append(res.Events, ToEventResponse(e))
	}
	return res, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventResponse, error) {
	event, err := s.getEvent(ctx, eventID, true)
	if err != nil {
		return nil, err
	}
	res := ToEventResponse(event)
	return &res, nil
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, req domain.CreateEventRequest) (*domain.EventResponse, error) {
	creatorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &entities.Event{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Date:               date,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Location:           req.Location,
		Image:              req.Image,
		Capacity:           req.Capacity,
		RequiredVolunteers: req.RequiredVolunteers,
		CreatedByID:        creatorID,
		Status:             domain.EventStatusPending,
		Impact:             req.Impact,
		Skills:             pq.StringArray(nonNil(req.Skills)),
		Requirements:       pq.StringArray(nonNil(req.Requirements)),
	}

	policy := actor.Role.Policy()
	if policy.AutoApproveEvents {
		now := s.now()
		event.Status = domain.EventStatusApproved
		event.IsApproved = true
		event.ApprovedByID = &creatorID
		event.ApprovalDate = &now
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if policy.NotifyAdminsOnCreate {
		s.notifyAdmins(ctx, actor, event)
	}

	return s.GetEvent(ctx, event.ID.String())
}

func (s *eventService) notifyAdmins(ctx context.Context, actor domain.Actor, event *entities.Event) {
	admins, err := s.admins.ListActiveAdmins(ctx)
	if err != nil {
		s.logger.Error("failed to list admins for event review", zap.String("event_id", event.ID.String()), zap.Error(err))
		return
	}
	for _, admin := range admins {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID:    admin.ID.String(),
			SenderID:       actor.ID,
			Type:           domain.NotificationEventCreated,
			Title:          "New event awaiting approval",
			Message:        fmt.Sprintf("%s created the event %q", actor.Name, event.Title),
			RelatedEventID: event.ID.String(),
		})
	}
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, eventID string, req domain.UpdateEventRequest) (*domain.EventResponse, error) {
	event, err := s.getEvent(ctx, eventID, false)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanActOn(actor.ID, event.CreatedByID.String()) {
		return nil, domain.ErrNotEventOwner
	}

	updates := map[string]interface{}{}
	setString(updates, "title", req.Title)
	setString(updates, "description", req.Description)
	setString(updates, "category", req.Category)
	setString(updates, "start_time", req.StartTime)
	setString(updates, "end_time", req.EndTime)
	setString(updates, "location", req.Location)
	setString(updates, "image", req.Image)
	setString(updates, "impact", req.Impact)
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if req.Capacity != nil {
		registered, err := s.repo.CountActiveRegistrations(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if int64(*req.Capacity) < registered {
			return nil, domain.ErrCapacityBelowRegistered
		}
		updates["capacity"] = *req.Capacity
	}
	if req.RequiredVolunteers != nil {
		updates["required_volunteers"] = *req.RequiredVolunteers
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(req.Skills)
	}
	if req.Requirements != nil {
		updates["requirements"] = pq.StringArray(req.Requirements)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateEvent(ctx, eventID, updates); err != nil {
			return nil, mapEventErr(err)
		}
	}
	return s.GetEvent(ctx, eventID)
}

func (s *eventService) UploadImage(ctx context.Context, actor domain.Actor, eventID string, file *multipart.FileHeader) (*domain.EventResponse, error) {
	event, err := s.getEvent(ctx, eventID, false)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanActOn(actor.ID, event.CreatedByID.String()) {
		return nil, domain.ErrNotEventOwner
	}

	objectKey, err := s.s3.UploadImage(ctx, "event-"+eventID, file, "events", eventImageMaxDim)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEvent(ctx, eventID, map[string]interface{}{
		"image": s.s3.GetPublicLinkKey(objectKey),
	}); err != nil {
		return nil, mapEventErr(err)
	}
	return s.GetEvent(ctx, eventID)
}

// Register seats the volunteer on the event. The event row stays locked from the capacity
// check to the insert, so concurrent registrations cannot overfill it.
func (s *eventService) Register(ctx context.Context, actor domain.Actor, eventID string) (*domain.RegistrationResponse, error) {
	volunteerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var (
		event        *entities.Event
		registration *entities.Registration
	)
	err = s.repo.Transaction(ctx, func(repo EventRepository) error {
		locked, err := repo.LockEventByID(ctx, eventID)
		if err != nil {
			return mapEventErr(err)
		}
		event = locked
		if !isOpenForRegistration(event) {
			return domain.ErrEventNotOpen
		}

		existing, err := repo.GetRegistration(ctx, actor.ID, eventID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && domain.IsActiveRegistrationStatus(existing.Status) {
			return domain.ErrAlreadyRegistered
		}

		registered, err := repo.CountActiveRegistrations(ctx, eventID)
		if err != nil {
			return err
		}
		if registered >= int64(event.Capacity) {
			return domain.ErrEventFull
		}

		if existing != nil {
			if err := repo.UpdateRegistration(ctx, existing.ID.String(), map[string]interface{}{
				"status":          domain.RegistrationStatusRegistered,
				"hours_worked":    0,
				"feedback":        "",
				"rating":          nil,
				"approved_by_id":  nil,
				"approval_date":   nil,
				"completion_date": nil,
			}); err != nil {
				return err
			}
			registration = existing
			registration.Status = domain.RegistrationStatusRegistered
			registration.HoursWorked = 0
			registration.Feedback = ""
			registration.Rating = nil
			registration.ApprovedByID = nil
			registration.ApprovalDate = nil
			registration.CompletionDate = nil
			return nil
		}

		registration = &entities.Registration{
			VolunteerID: volunteerID,
			EventID:     eventUUID,
			Status:      domain.RegistrationStatusRegistered,
		}
		if err := repo.CreateRegistration(ctx, registration); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	metrics.EventRegistrations.WithLabelValues(registrationOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.NotificationInput{
		RecipientID:           event.CreatedByID.String(),
		SenderID:              actor.ID,
		Type:                  domain.NotificationRegistrationNew,
		Title:                 "New volunteer registration",
		Message:               fmt.Sprintf("%s registered for %q", actor.Name, event.Title),
		RelatedEventID:        eventID,
		RelatedRegistrationID: registration.ID.String(),
	})

	// the locked row carries no associations
	if loaded, err := s.repo.GetEventByID(ctx, eventID, true); err == nil {
		event = loaded
	} else {
		s.logger.Warn("failed to reload event after registration", zap.String("event_id", eventID), zap.Error(err))
	}

	res := ToRegistrationResponse(registration)
	eventRes := ToEventResponse(event)
	res.Event = &eventRes
	return &res, nil
}

func (s *eventService) GetUserRegistrations(ctx context.Context, volunteerID string) ([]domain.RegistrationResponse, error) {
	registrations, err := s.repo.ListRegistrationsByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	return toRegistrationResponses(registrations), nil
}

func (s *eventService) GetHistory(ctx context.Context, volunteerID string) (*domain.HistoryResponse, error) {
	registrations, err := s.repo.ListRegistrationsByVolunteer(ctx, volunteerID, domain.RegistrationStatusCompleted)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(registrations, func(i, j int) bool {
		return completedAt(registrations[i]).After(completedAt(registrations[j]))
	})

	res := &domain.HistoryResponse{
		Registrations: toRegistrationResponses(registrations),
		TotalEvents:   len(registrations),
	}
	for _, r := range registrations {
		res.TotalHours += r.HoursWorked
	}
	return res, nil
}

func (s *eventService) ApproveEvent(ctx context.Context, actor domain.Actor, eventID string, req domain.ApproveEventRequest) (*domain.EventResponse, error) {
	approverID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, domain.ErrEventNotFound
	}

	approved := req.ApprovalStatus == domain.ApprovalApproved
	status := domain.EventStatusCancelled
	if approved {
		status = domain.EventStatusApproved
	}

	if err := s.repo.UpdateEvent(ctx, eventID, map[string]interface{}{
		"status":         status,
		"is_approved":    approved,
		"approved_by_id": approverID,
		"approval_date":  s.now(),
	}); err != nil {
		return nil, mapEventErr(err)
	}

	event, err := s.getEvent(ctx, eventID, true)
	if err != nil {
		return nil, err
	}

	in := domain.NotificationInput{
		RecipientID:    event.CreatedByID.String(),
		SenderID:       actor.ID,
		Type:           domain.NotificationEventRejected,
		Title:          "Event rejected",
		Message:        fmt.Sprintf("Your event %q was rejected by %s", event.Title, actor.Name),
		RelatedEventID: eventID,
	}
	if approved {
		in.Type = domain.NotificationEventApproved
		in.Title = "Event approved"
		in.Message = fmt.Sprintf("Your event %q was approved by %s", event.Title, actor.Name)
	}
	s.notifier.Notify(ctx, in)

	res := ToEventResponse(event)
	return &res, nil
}

func (s *eventService) UpdateRegistrationStatus(ctx context.Context, actor domain.Actor, registrationID string, req domain.UpdateRegistrationStatusRequest) (*domain.RegistrationResponse, error) {
	approverID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(registrationID); err != nil {
		return nil, domain.ErrRegistrationNotFound
	}

	var registration *entities.Registration
	err = s.repo.Transaction(ctx, func(repo EventRepository) error {
		current, err := repo.GetRegistrationByID(ctx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRegistrationNotFound
			}
			return err
		}
		if current.Event == nil || !actor.Role.CanActOn(actor.ID, current.Event.CreatedByID.String()) {
			return domain.ErrNotRegistrationManager
		}
		if !domain.IsActiveRegistrationStatus(current.Status) && domain.IsActiveRegistrationStatus(req.Status) {
			if err := ensureSeat(ctx, repo, current.EventID.String()); err != nil {
				return err
			}
		}

		now := s.now()
		hours := current.HoursWorked
		updates := map[string]interface{}{
			"status":         req.Status,
			"approved_by_id": approverID,
			"approval_date":  now,
		}
		if req.HoursWorked != nil {
			hours = *req.HoursWorked
			updates["hours_worked"] = hours
		}
		if req.Feedback != "" {
			updates["feedback"] = req.Feedback
		}
		if req.Rating != nil {
			updates["rating"] = *req.Rating
		}
		if req.Status == domain.RegistrationStatusCompleted && current.Status != domain.RegistrationStatusCompleted {
			updates["completion_date"] = now
		}

		if err := repo.UpdateRegistration(ctx, registrationID, updates); err != nil {
			return err
		}

		events, credit := creditDelta(current.Status, current.HoursWorked, req.Status, hours)
		if events != 0 || credit != 0 {
			if err := repo.CreditVolunteer(ctx, current.VolunteerID.String(), events, credit); err != nil {
				return err
			}
		}

		registration, err = repo.GetRegistrationByID(ctx, registrationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyRegistrationDecision(ctx, actor, registration)

	res := ToRegistrationResponse(registration)
	if registration.Event != nil {
		eventRes := ToEventResponse(registration.Event)
		res.Event = &eventRes
	}
	return &res, nil
}

func (s *eventService) notifyRegistrationDecision(ctx context.Context, actor domain.Actor, r *entities.Registration) {
	var in domain.NotificationInput
	switch r.Status {
	case domain.RegistrationStatusApproved:
		in.Type = domain.NotificationRegistrationApproved
		in.Title = "Registration approved"
	case domain.RegistrationStatusRejected:
		in.Type = domain.NotificationRegistrationRejected
		in.Title = "Registration rejected"
	default:
		return
	}

	title := ""
	if r.Event != nil {
		title = r.Event.Title
	}
	in.RecipientID = r.VolunteerID.String()
	in.SenderID = actor.ID
	in.Message = fmt.Sprintf("Your registration for %q was %s", title, r.Status)
	in.RelatedEventID = r.EventID.String()
	in.RelatedRegistrationID = r.ID.String()
	s.notifier.Notify(ctx, in)
}

func (s *eventService) CompleteEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.CompleteEventResponse, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, domain.ErrEventNotFound
	}

	var (
		event     *entities.Event
		completed []*entities.Registration
	)
	err := s.repo.Transaction(ctx, func(repo EventRepository) error {
		var err error
		event, err = repo.LockEventByID(ctx, eventID)
		if err != nil {
			return mapEventErr(err)
		}
		if !actor.Role.CanActOn(actor.ID, event.CreatedByID.String()) {
			return domain.ErrNotEventOwner
		}
		if event.Status == domain.EventStatusCompleted {
			return domain.ErrEventAlreadyCompleted
		}

		if err := repo.UpdateEvent(ctx, eventID, map[string]interface{}{
			"status": domain.EventStatusCompleted,
		}); err != nil {
			return err
		}

		approved, err := repo.ListRegistrationsByEvent(ctx, eventID, domain.RegistrationStatusApproved)
		if err != nil {
			return err
		}
		now := s.now()
		for _, r := range approved {
			if err := repo.UpdateRegistration(ctx, r.ID.String(), map[string]interface{}{
				"status":          domain.RegistrationStatusCompleted,
				"completion_date": now,
			}); err != nil {
				return err
			}
			if err := repo.CreditVolunteer(ctx, r.VolunteerID.String(), 1, r.HoursWorked); err != nil {
				return err
			}
		}
		completed = approved
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range completed {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID:           r.VolunteerID.String(),
			SenderID:              actor.ID,
			Type:                  domain.NotificationEventCompleted,
			Title:                 "Event completed",
			Message:               fmt.Sprintf("Thank you for volunteering at %q", event.Title),
			RelatedEventID:        eventID,
			RelatedRegistrationID: r.ID.String(),
		})
	}

	eventRes, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.CompleteEventResponse{Event: *eventRes, CompletedVolunteers: len(completed)}, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID string, withVolunteers bool) (*entities.Event, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, domain.ErrEventNotFound
	}
	event, err := s.repo.GetEventByID(ctx, eventID, withVolunteers)
	if err != nil {
		return nil, mapEventErr(err)
	}
	return event, nil
}

// ensureSeat locks the event and fails when every seat is held by an active registration.
func ensureSeat(ctx context.Context, repo EventRepository, eventID string) error {
	event, err := repo.LockEventByID(ctx, eventID)
	if err != nil {
		return mapEventErr(err)
	}
	registered, err := repo.CountActiveRegistrations(ctx, eventID)
	if err != nil {
		return err
	}
	if registered >= int64(event.Capacity) {
		return domain.ErrEventFull
	}
	return nil
}

func isOpenForRegistration(e *entities.Event) bool {
	return e.IsApproved && (e.Status == domain.EventStatusApproved || e.Status == domain.EventStatusOngoing)
}

// creditDelta is the change to a volunteer's totals when a registration moves between statuses.
// Only completed registrations count.
func creditDelta(fromStatus string, fromHours float64, toStatus string, toHours float64) (int, float64) {
	var events int
	var hours float64
	if fromStatus == domain.RegistrationStatusCompleted {
		events--
		hours -= fromHours
	}
	if toStatus == domain.RegistrationStatusCompleted {
		events++
		hours += toHours
	}
	return events, hours
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return "registered"
	case errors.Is(err, domain.ErrEventFull):
		return "full"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, domain.ErrEventNotOpen):
		return "not_open"
	case errors.Is(err, domain.ErrEventNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func mapEventErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrEventNotFound
	}
	return err
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidEventDate
}

func completedAt(r *entities.Registration) time.Time {
	if r.CompletionDate != nil {
		return *r.CompletionDate
	}
	return r.UpdatedAt
}

func setString(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func ToEventResponse(e *entities.Event) domain.EventResponse {
	res := domain.EventResponse{
		ID:                   e.ID.String(),
		Title:                e.Title,
		Description:          e.Description,
		Category:             e.Category,
		Date:                 e.Date,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Location:             e.Location,
		Image:                e.Image,
		Capacity:             e.Capacity,
		RequiredVolunteers:   e.RequiredVolunteers,
		RegisteredVolunteers: []domain.UserSummary{},
		CreatedBy:            user.ToUserSummary(e.CreatedBy),
		Status:               e.Status,
		Impact:               e.Impact,
		Skills:               nonNil(e.Skills),
		Requirements:         nonNil(e.Requirements),
		IsApproved:           e.IsApproved,
		ApprovalDate:         e.ApprovalDate,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if e.ApprovedByID != nil {
		res.ApprovedBy = e.ApprovedByID.String()
	}
	for _, r := range e.Registrations {
		if !domain.IsActiveRegistrationStatus(r.Status) {
			continue
		}
		if summary := user.ToUserSummary(r.Volunteer); summary != nil {
			res.RegisteredVolunteers = append(res.RegisteredVolunteers, *summary)
		} else {
			res.RegisteredVolunteers = append(res.RegisteredVolunteers, domain.UserSummary{ID: r.VolunteerID.String()})
		}
	}
	res.RegisteredCount = len(res.RegisteredVolunteers)
	return res
}

func ToRegistrationResponse(r *entities.Registration) domain.RegistrationResponse {
	res := domain.RegistrationResponse{
		ID:             r.ID.String(),
		Volunteer:      user.ToUserSummary(r.Volunteer),
		VolunteerID:    r.VolunteerID.String(),
		EventID:        r.EventID.String(),
		Status:         r.Status,
		HoursWorked:    r.HoursWorked,
		Feedback:       r.Feedback,
		Rating:         r.Rating,
		ApprovalDate:   r.ApprovalDate,
		CompletionDate: r.CompletionDate,
		CreatedAt:      r.CreatedAt,
	}
	if r.ApprovedByID != nil {
		res.ApprovedBy = r.ApprovedByID.String()
	}
	return res
}

func toRegistrationResponses(registrations []*entities.Registration) []domain.RegistrationResponse {
	res := make([]domain.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		item := ToRegistrationResponse(r)
		if r.Event != nil {
			eventRes := ToEventResponse(r.Event)
			item.Event = &eventRes
		}
		res = append(res, item)
	}
	return res
}
