package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
)

var exportHeaders = map[string][]string{
	domain.ExportEvents: {
		"title", "category", "date", "location", "capacity", "status", "isApproved",
		"createdBy.name", "createdBy.email", "createdAt",
	},
	domain.ExportUsers: {
		"name", "email", "role", "phone", "isActive", "eventsCompleted", "hoursContributed", "createdAt",
	},
	domain.ExportRegistrations: {
		"volunteer.name", "volunteer.email", "event.title", "event.date", "status", "hoursWorked",
		"rating", "createdAt",
	},
}

// Export flattens every row of the requested table. It is recomputed on each call.
func (s *dashboardService) Export(ctx context.Context, exportType string) (*domain.ExportTable, error) {
	headers, ok := exportHeaders[exportType]
	if !ok {
		return nil, domain.ErrInvalidExportType
	}

	var records []map[string]any
	switch exportType {
	case domain.ExportEvents:
		events, err := s.repo.ExportEvents(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			records = append(records, eventRecord(e))
		}
	case domain.ExportUsers:
		users, err := s.repo.ExportUsers(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			records = append(records, userRecord(u))
		}
	case domain.ExportRegistrations:
		registrations, err := s.repo.ExportRegistrations(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range registrations {
			records = append(records, registrationRecord(r))
		}
	}

	table := &domain.ExportTable{
		Type:    exportType,
		Headers: headers,
		Rows:    make([][]string, 0, len(records)),
		Records: records,
	}
	if table.Records == nil {
		table.Records = []map[string]any{}
	}
	for _, record := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = formatCell(record[h])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func eventRecord(e *entities.Event) map[string]any {
	record := map[string]any{
		"title":           e.Title,
		"category":        e.Category,
		"date":            e.Date,
		"location":        e.Location,
		"capacity":        e.Capacity,
		"status":          e.Status,
		"isApproved":      e.IsApproved,
		"createdBy.name":  nil,
		"createdBy.email": nil,
		"createdAt":       e.CreatedAt,
	}
	if e.CreatedBy != nil {
		record["createdBy.name"] = e.CreatedBy.Name
		record["createdBy.email"] = e.CreatedBy.Email
	}
	return record
}

func userRecord(u *entities.User) map[string]any {
	return map[string]any{
		"name":             u.Name,
		"email":            u.Email,
		"role":             u.Role,
		"phone":            u.Phone,
		"isActive":         u.IsActive,
		"eventsCompleted":  u.EventsCompleted,
		"hoursContributed": u.HoursContributed,
		"createdAt":        u.CreatedAt,
	}
}

func registrationRecord(r *entities.Registration) map[string]any {
	record := map[string]any{
		"volunteer.name":  nil,
		"volunteer.email": nil,
		"event.title":     nil,
		"event.date":      nil,
		"status":          r.Status,
		"hoursWorked":     r.HoursWorked,
		"rating":          nil,
		"createdAt":       r.CreatedAt,
	}
	if r.Volunteer != nil {
		record["volunteer.name"] = r.Volunteer.Name
		record["volunteer.email"] = r.Volunteer.Email
	}
	if r.Event != nil {
		record["event.title"] = r.Event.Title
		record["event.date"] = r.Event.Date
	}
	if r.Rating != nil {
		record["rating"] = *r.Rating
	}
	return record
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// Render encodes the table as csv or json and returns the body, content type and
// attachment file name.
func Render(table *domain.ExportTable, format string) ([]byte, string, string, error) {
	if format == domain.ExportFormatCSV {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(table.Headers); err != nil {
			return nil, "", "", err
		}
		if err := w.WriteAll(table.Rows); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), "text/csv", table.Type + "_export.csv", nil
	}

	body, err := json.Marshal(table.Records)
	if err != nil {
		return nil, "", "", err
	}
	return body, "application/json", table.Type + "_export.json", nil
}
