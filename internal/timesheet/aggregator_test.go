package timesheet_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/apontae/timesheet-management/internal/timesheet"
)

func entryOn(date string, hours string) timesheet.Entry {
	parsed, err := timesheet.ParseDate(date)
	Expect(err).ToNot(HaveOccurred())
	return timesheet.Entry{
		ID:              1,
		UserID:          1,
		EntryDate:       parsed,
		Hours:           hours,
		ClientID:        10,
		CampaignID:      20,
		CampaignTaskID:  30,
		ClientTradeName: "Acme",
		CampaignName:    "Lançamento Verão",
		TaskDescription: "Planejamento de mídia",
	}
}

var _ = Describe("Aggregate", func() {
	Context("grouping", func() {
		It("should merge entries sharing client, campaign and task into one line", func() {
			// Given two entries on the same assignment, different days
			first := entryOn("2026-03-09", "2")
			second := entryOn("2026-03-10", "1.5")

			// When
			result := timesheet.Aggregate([]timesheet.Entry{first, second}, timesheet.Options{})

			// Then
			Expect(result.Lines).To(HaveLen(1))
			line := result.Lines[0]
			Expect(line.Key).To(Equal("10-20-30"))
			Expect(line.TotalHours.Equal(decimal.RequireFromString("3.5"))).To(BeTrue())
			Expect(line.DayHours(timesheet.DaySeg).Equal(decimal.RequireFromString("2"))).To(BeTrue())
			Expect(line.DayHours(timesheet.DayTer).Equal(decimal.RequireFromString("1.5"))).To(BeTrue())
		})

		It("should split entries with different tasks into separate lines", func() {
			first := entryOn("2026-03-09", "2")
			second := entryOn("2026-03-09", "3")
			second.CampaignTaskID = 31

			result := timesheet.Aggregate([]timesheet.Entry{first, second}, timesheet.Options{})

			Expect(result.Lines).To(HaveLen(2))
		})

		It("should keep lines in first-seen order", func() {
			first := entryOn("2026-03-09", "2")
			second := entryOn("2026-03-09", "3")
			second.ClientID = 11
			third := entryOn("2026-03-10", "1")

			result := timesheet.Aggregate([]timesheet.Entry{first, second, third}, timesheet.Options{})

			Expect(result.Lines).To(HaveLen(2))
			Expect(result.Lines[0].Key).To(Equal("10-20-30"))
			Expect(result.Lines[1].Key).To(Equal("11-20-30"))
		})

		It("should exclude entries missing any grouping id", func() {
			orphan := entryOn("2026-03-09", "8")
			orphan.CampaignTaskID = 0

			result := timesheet.Aggregate([]timesheet.Entry{orphan}, timesheet.Options{})

			Expect(result.Lines).To(BeEmpty())
			Expect(result.GrandTotal.IsZero()).To(BeTrue())
		})
	})

	Context("totals", func() {
		It("should make the grand total equal the sum of line totals", func() {
			entries := []timesheet.Entry{
				entryOn("2026-03-09", "2"),
				entryOn("2026-03-10", "1.5"),
			}
			other := entryOn("2026-03-11", "4")
			other.CampaignID = 21
			entries = append(entries, other)

			result := timesheet.Aggregate(entries, timesheet.Options{})

			sum := decimal.Zero
			for _, line := range result.Lines {
				sum = sum.Add(line.TotalHours)
			}
			Expect(result.GrandTotal.Equal(sum)).To(BeTrue())
			Expect(result.GrandTotal.Equal(decimal.RequireFromString("7.5"))).To(BeTrue())
		})

		It("should make day totals cut across lines", func() {
			first := entryOn("2026-03-09", "2")
			second := entryOn("2026-03-09", "3")
			second.ClientID = 11

			result := timesheet.Aggregate([]timesheet.Entry{first, second}, timesheet.Options{})

			Expect(result.DayTotals[timesheet.DaySeg].Equal(decimal.RequireFromString("5"))).To(BeTrue())
			Expect(result.DayTotals[timesheet.DayDom].IsZero()).To(BeTrue())
		})

		It("should treat unparsable hours as zero without dropping the entry", func() {
			bad := entryOn("2026-03-09", "abc")
			good := entryOn("2026-03-09", "2")

			result := timesheet.Aggregate([]timesheet.Entry{bad, good}, timesheet.Options{})

			Expect(result.Lines).To(HaveLen(1))
			Expect(result.Lines[0].Days[timesheet.DaySeg]).To(HaveLen(2))
			Expect(result.GrandTotal.Equal(decimal.RequireFromString("2"))).To(BeTrue())
		})

		It("should add decimals exactly", func() {
			entries := []timesheet.Entry{
				entryOn("2026-03-09", "0.1"),
				entryOn("2026-03-09", "0.2"),
			}

			result := timesheet.Aggregate(entries, timesheet.Options{})

			Expect(result.GrandTotal.Equal(decimal.RequireFromString("0.3"))).To(BeTrue())
		})
	})

	Context("idempotence", func() {
		It("should produce the same result when run twice over the same input", func() {
			entries := []timesheet.Entry{
				entryOn("2026-03-09", "2"),
				entryOn("2026-03-10", "1.5"),
			}

			first := timesheet.Aggregate(entries, timesheet.Options{})
			second := timesheet.Aggregate(entries, timesheet.Options{})

			Expect(second.Lines).To(HaveLen(len(first.Lines)))
			Expect(second.GrandTotal.Equal(first.GrandTotal)).To(BeTrue())
			for day, total := range first.DayTotals {
				Expect(second.DayTotals[day].Equal(total)).To(BeTrue())
			}
		})
	})

	Context("labels", func() {
		It("should prefer the trade name, then the company name", func() {
			entry := entryOn("2026-03-09", "1")
			entry.ClientTradeName = ""
			entry.ClientCompanyName = "Acme Publicidade Ltda"

			result := timesheet.Aggregate([]timesheet.Entry{entry}, timesheet.Options{})

			Expect(result.Lines[0].ClientLabel).To(Equal("Acme Publicidade Ltda"))
		})

		It("should fall back to Portuguese labels when relations were not loaded", func() {
			entry := entryOn("2026-03-09", "1")
			entry.ClientTradeName = ""
			entry.ClientCompanyName = ""
			entry.CampaignName = ""
			entry.TaskDescription = ""

			result := timesheet.Aggregate([]timesheet.Entry{entry}, timesheet.Options{})

			line := result.Lines[0]
			Expect(line.ClientLabel).To(Equal(timesheet.FallbackClientLabel))
			Expect(line.CampaignLabel).To(Equal(timesheet.FallbackCampaignLabel))
			Expect(line.TaskLabel).To(Equal(timesheet.FallbackTaskLabel))
		})
	})

	Context("collaborators", func() {
		It("should list each collaborator once, comma separated", func() {
			first := entryOn("2026-03-09", "2")
			first.UserFirstName, first.UserLastName = "Ana", "Souza"
			second := entryOn("2026-03-10", "3")
			second.UserID = 2
			second.UserFirstName, second.UserLastName = "Bruno", "Lima"
			third := entryOn("2026-03-11", "1")
			third.UserFirstName, third.UserLastName = "Ana", "Souza"

			result := timesheet.Aggregate([]timesheet.Entry{first, second, third}, timesheet.Options{WithCollaborators: true})

			Expect(result.Lines).To(HaveLen(1))
			Expect(result.Lines[0].Collaborators).To(Equal("Ana Souza, Bruno Lima"))
		})

		It("should leave collaborators empty when not requested", func() {
			entry := entryOn("2026-03-09", "2")
			entry.UserFirstName = "Ana"

			result := timesheet.Aggregate([]timesheet.Entry{entry}, timesheet.Options{})

			Expect(result.Lines[0].Collaborators).To(BeEmpty())
		})
	})
})

var _ = Describe("Formatting", func() {
	It("should render zero cells as a dash", func() {
		Expect(timesheet.FormatCell(decimal.Zero)).To(Equal(timesheet.CellDash))
	})

	It("should render non-zero cells with a comma separator", func() {
		Expect(timesheet.FormatCell(decimal.RequireFromString("3.5"))).To(Equal("3,50"))
	})

	It("should render zero totals as 0,00 and never as a dash", func() {
		Expect(timesheet.FormatTotal(decimal.Zero)).To(Equal("0,00"))
	})

	It("should render whole-number totals with two decimals", func() {
		Expect(timesheet.FormatTotal(decimal.RequireFromString("8"))).To(Equal("8,00"))
	})
})

var _ = Describe("ParseHours", func() {
	It("should parse exact decimals", func() {
		Expect(timesheet.ParseHours("2.5").Equal(decimal.RequireFromString("2.5"))).To(BeTrue())
	})

	It("should default empty and unparsable input to zero", func() {
		Expect(timesheet.ParseHours("").IsZero()).To(BeTrue())
		Expect(timesheet.ParseHours("abc").IsZero()).To(BeTrue())
	})

	It("should tolerate surrounding whitespace", func() {
		Expect(timesheet.ParseHours(" 4 ").Equal(decimal.RequireFromString("4"))).To(BeTrue())
	})
})

var _ = Describe("week window helpers", func() {
	It("should keep a full Monday to Sunday window inside one aggregation", func() {
		start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		entries := make([]timesheet.Entry, 0, 7)
		for i := 0; i < 7; i++ {
			e := entryOn(start.AddDate(0, 0, i).Format(time.DateOnly), "1")
			entries = append(entries, e)
		}

		result := timesheet.Aggregate(entries, timesheet.Options{})

		Expect(result.Lines).To(HaveLen(1))
		for _, day := range timesheet.WeekDayKeys() {
			Expect(result.DayTotals[day].Equal(decimal.RequireFromString("1"))).To(BeTrue(), "day %s", day)
		}
		Expect(result.GrandTotal.Equal(decimal.RequireFromString("7"))).To(BeTrue())
	})
})
