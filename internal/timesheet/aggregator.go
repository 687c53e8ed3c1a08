package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fallback labels shown when an entry's relations were not loaded.
const (
	FallbackClientLabel   = "Cliente não informado"
	FallbackCampaignLabel = "Campanha não informada"
	FallbackTaskLabel     = "Tarefa não informada"
)

// Entry is the flattened view of one time entry the aggregator consumes.
// The caller is responsible for restricting entries to a single 7-day window
// beginning Monday; the aggregator does not re-validate the window.
type Entry struct {
	ID                int64
	UserID            int64
	EntryDate         time.Time
	Hours             string
	Status            string
	ClientID          int64
	CampaignID        int64
	CampaignTaskID    int64
	ClientTradeName   string
	ClientCompanyName string
	CampaignName      string
	TaskDescription   string
	UserFirstName     string
	UserLastName      string
}

// Line is one aggregation bucket keyed by (client, campaign, task), spanning
// all seven days of the week.
type Line struct {
	Key             string
	ClientID        int64
	CampaignID      int64
	CampaignTaskID  int64
	ClientLabel     string
	CampaignLabel   string
	TaskLabel       string
	Days            map[DayKey][]Entry
	TotalHours      decimal.Decimal
	Collaborators   string
	collaboratorSet []string
}

// Result carries the aggregated lines plus the column and grand totals.
type Result struct {
	Lines      []*Line
	DayTotals  map[DayKey]decimal.Decimal
	GrandTotal decimal.Decimal
}

// Options tunes the aggregation for the consuming view. Collaborator names
// only appear on the manager-facing review table.
type Options struct {
	WithCollaborators bool
}

// ParseHours parses an exact decimal hours string, defaulting to zero for
// anything missing or unparsable so bad data never breaks a total.
func ParseHours(hours string) decimal.Decimal {
	if hours == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(hours))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Aggregate groups a week's flat entry collection into lines. Entries missing
// any of the three grouping ids cannot be placed on a line and are silently
// excluded. The function is pure: it never mutates its input and never fails
// for well-formed entries.
func Aggregate(entries []Entry, opts Options) Result {
	result := Result{
		Lines:      make([]*Line, 0),
		DayTotals:  make(map[DayKey]decimal.Decimal, 7),
		GrandTotal: decimal.Zero,
	}
	for _, day := range WeekDayKeys() {
		result.DayTotals[day] = decimal.Zero
	}

	byKey := make(map[string]*Line)

	for _, entry := range entries {
		if entry.ClientID == 0 || entry.CampaignID == 0 || entry.CampaignTaskID == 0 {
			continue
		}

		key := lineKey(entry.ClientID, entry.CampaignID, entry.CampaignTaskID)
		line, ok := byKey[key]
		if !ok {
			line = &Line{
				Key:            key,
				ClientID:       entry.ClientID,
				CampaignID:     entry.CampaignID,
				CampaignTaskID: entry.CampaignTaskID,
				ClientLabel:    clientLabel(entry),
				CampaignLabel:  fallback(entry.CampaignName, FallbackCampaignLabel),
				TaskLabel:      fallback(entry.TaskDescription, FallbackTaskLabel),
				Days:           make(map[DayKey][]Entry, 7),
				TotalHours:     decimal.Zero,
			}
			byKey[key] = line
			result.Lines = append(result.Lines, line)
		}

		day := DayKeyFor(entry.EntryDate)
		line.Days[day] = append(line.Days[day], entry)

		hours := ParseHours(entry.Hours)
		line.TotalHours = line.TotalHours.Add(hours)
		result.DayTotals[day] = result.DayTotals[day].Add(hours)
		result.GrandTotal = result.GrandTotal.Add(hours)

		if opts.WithCollaborators {
			line.addCollaborator(entry)
		}
	}

	return result
}

// DayHours sums the hours bucketed into one day of a line.
func (l *Line) DayHours(day DayKey) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range l.Days[day] {
		total = total.Add(ParseHours(entry.Hours))
	}
	return total
}

func (l *Line) addCollaborator(entry Entry) {
	name := strings.TrimSpace(entry.UserFirstName + " " + entry.UserLastName)
	if name == "" {
		return
	}
	for _, existing := range l.collaboratorSet {
		if existing == name {
			return
		}
	}
	l.collaboratorSet = append(l.collaboratorSet, name)
	l.Collaborators = strings.Join(l.collaboratorSet, ", ")
}

func lineKey(clientID, campaignID, taskID int64) string {
	return fmt.Sprintf("%d-%d-%d", clientID, campaignID, taskID)
}

func clientLabel(entry Entry) string {
	if entry.ClientTradeName != "" {
		return entry.ClientTradeName
	}
	if entry.ClientCompanyName != "" {
		return entry.ClientCompanyName
	}
	return FallbackClientLabel
}

func fallback(value, label string) string {
	if value == "" {
		return label
	}
	return value
}
