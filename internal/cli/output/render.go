package output

import (
	"fmt"
	"strings"

	"github.com/sirenhq/siren/internal/cli/timeutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

// IncidentTable renders incidents in the shape used by `sirenctl incident list`.
func IncidentTable(incidents []apiclient.Incident) *TableData {
	t := NewTableData("REFERENCE", "CATEGORY", "PRI", "STATUS", "TITLE", "UNIT", "AGE")
	for _, inc := range incidents {
		unit := "-"
		if inc.AssignedUnit != nil {
			unit = inc.AssignedUnit.CallSign
		} else if inc.AssignedUnitID != nil {
			unit = *inc.AssignedUnitID
		}
		t.AddRow(
			inc.Reference,
			inc.Category,
			fmt.Sprintf("P%d", inc.Priority),
			inc.Status,
			truncate(inc.Title, 40),
			unit,
			timeutil.FormatAge(inc.ReportedAt),
		)
	}
	return t
}

// IncidentDetail renders a single incident as key-value pairs for
// `sirenctl incident show`.
func IncidentDetail(inc *apiclient.Incident) [][2]string {
	pairs := [][2]string{
		{"Reference", inc.Reference},
		{"Status", inc.Status},
		{"Category", inc.Category},
		{"Priority", fmt.Sprintf("P%d", inc.Priority)},
		{"Title", inc.Title},
	}
	if inc.Description != "" {
		pairs = append(pairs, [2]string{"Description", inc.Description})
	}
	if inc.Address != "" {
		pairs = append(pairs, [2]string{"Address", inc.Address})
	}
	if inc.Latitude != nil && inc.Longitude != nil {
		pairs = append(pairs, [2]string{"Location", fmt.Sprintf("%.5f, %.5f", *inc.Latitude, *inc.Longitude)})
	}
	if inc.Reporter != nil {
		pairs = append(pairs, [2]string{"Reporter", inc.Reporter.Username})
	}
	if inc.AssignedUnit != nil {
		pairs = append(pairs, [2]string{"Assigned unit", inc.AssignedUnit.CallSign})
	}
	pairs = append(pairs, [2]string{"Reported", timeutil.FormatTimestamp(inc.ReportedAt)})
	if inc.ResolvedAt != nil {
		pairs = append(pairs, [2]string{"Resolved", timeutil.FormatTimestamp(*inc.ResolvedAt)})
	}
	if inc.ClosedAt != nil {
		pairs = append(pairs, [2]string{"Closed", timeutil.FormatTimestamp(*inc.ClosedAt)})
	}
	return pairs
}

// UnitTable renders response units for `sirenctl unit list`.
func UnitTable(units []apiclient.Unit) *TableData {
	t := NewTableData("CALL SIGN", "CATEGORY", "STATUS", "STATION")
	for _, u := range units {
		station := u.Station
		if station == "" {
			station = "-"
		}
		t.AddRow(u.CallSign, u.Category, u.Status, station)
	}
	return t
}

// UserTable renders user accounts for `sirenctl user list`.
func UserTable(users []apiclient.User) *TableData {
	t := NewTableData("USERNAME", "ROLE", "DISPLAY NAME", "ENABLED")
	for _, u := range users {
		name := u.DisplayName
		if name == "" {
			name = "-"
		}
		t.AddRow(u.Username, u.Role, name, fmt.Sprintf("%t", u.Enabled))
	}
	return t
}

// MessageLines renders a chat transcript, one line per message.
func MessageLines(messages []apiclient.ChatMessage) []string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = fmt.Sprintf("[%s] %s (%s): %s",
			timeutil.FormatTimestamp(m.CreatedAt), m.SenderUsername, m.SenderRole, m.Body)
	}
	return lines
}

// EventTable renders an incident's audit trail for `sirenctl incident events`.
func EventTable(events []apiclient.IncidentEvent) *TableData {
	t := NewTableData("TIME", "TYPE", "TRANSITION", "DETAIL")
	for _, e := range events {
		transition := "-"
		if e.ToStatus != "" {
			if e.FromStatus != "" {
				transition = e.FromStatus + " > " + e.ToStatus
			} else {
				transition = e.ToStatus
			}
		}
		detail := e.Detail
		if detail == "" {
			detail = "-"
		}
		t.AddRow(timeutil.FormatTimestamp(e.CreatedAt), e.Type, transition, detail)
	}
	return t
}

// SettingTable renders server settings for `sirenctl settings list`.
func SettingTable(settings []apiclient.Setting) *TableData {
	t := NewTableData("KEY", "VALUE")
	for _, s := range settings {
		t.AddRow(s.Key, s.Value)
	}
	return t
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
