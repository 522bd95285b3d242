package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"worklens/src-cli/aggregate"
	"worklens/src-cli/classify"
	"worklens/src-cli/ics"
	"worklens/src-cli/metric"
	"worklens/src-cli/query"
	"worklens/src-cli/report"
	"worklens/src-cli/route"
	"worklens/src-cli/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	app := &cli.App{
		Name:  "worklens",
		Usage: "Categorized time and engagement reports from a personal calendar export",
		Commands: []*cli.Command{
			analyzeCommand(),
			reportCommand(),
			queryCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Parse the calendar export, classify and aggregate it, write the JSON snapshot",
		Action: func(c *cli.Context) error {
			config := utils.NewConfig()

			keywords := classify.DefaultKeywords()
			if path := config.GetKeywordsFile(); path != "" {
				var err error
				if keywords, err = classify.LoadKeywords(path); err != nil {
					return err
				}
				slog.Info("keyword overrides loaded", "file", path)
			}

			calendar, err := ics.FromFile(config.GetCalendarFile(), config.GetSelfEmail())
			if err != nil {
				return err
			}
			slog.Info("calendar parsed",
				"file", config.GetCalendarFile(),
				"events", calendar.EventCount())

			aggregator := aggregate.New(
				classify.New(keywords),
				config.GetSelfEmail(),
				config.GetInternalDomain(),
			)
			events := calendar.GetEvents()
			for i := range events {
				aggregator.Add(&events[i])
			}

			snapshot := aggregator.Snapshot()
			path := filepath.Join(config.GetOutputDir(), aggregate.SnapshotFileName)
			if err := snapshot.WriteFile(path); err != nil {
				return err
			}

			slog.Info("snapshot written",
				"path", path,
				"events", snapshot.Summary.TotalEvents,
				"work_events", snapshot.Summary.WorkEvents,
				"work_hours", snapshot.Summary.WorkHours,
				"stakeholders", len(snapshot.Stakeholders))
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render a Markdown work-activity summary from the snapshot",
		Action: func(c *cli.Context) error {
			config := utils.NewConfig()
			snapshot, err := loadSnapshot(config)
			if err != nil {
				return err
			}

			path := filepath.Join(config.GetOutputDir(), "work_summary.md")
			if err := report.RenderToFile(snapshot, path); err != nil {
				return err
			}
			slog.Info("report written", "path", path)
			return nil
		},
	}
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Point lookups over the snapshot",
		Subcommands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Overall totals and meeting-type breakdown",
				Action: func(c *cli.Context) error {
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					printSummary(snapshot)
					return nil
				},
			},
			{
				Name:  "top",
				Usage: "Top stakeholders by hours",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "n",
						Value: 20,
						Usage: "how many stakeholders to list",
					},
				},
				Action: func(c *cli.Context) error {
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					printStakeholderTable(query.TopStakeholders(snapshot, c.Int("n")))
					return nil
				},
			},
			{
				Name:      "stakeholder",
				Usage:     "Search stakeholders by name substring",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					search := strings.Join(c.Args().Slice(), " ")
					if search == "" {
						return fmt.Errorf("stakeholder name to search is required")
					}
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					matches := query.FindStakeholders(snapshot, search)
					if len(matches) == 0 {
						fmt.Printf("No stakeholders found matching %q\n", search)
						return nil
					}
					printStakeholderDetails(matches)
					return nil
				},
			},
			{
				Name:      "month",
				Usage:     "One month's buckets (YYYY-MM, or natural language like \"last october\")",
				ArgsUsage: "<month>",
				Action: func(c *cli.Context) error {
					arg := strings.Join(c.Args().Slice(), " ")
					if arg == "" {
						return fmt.Errorf("month is required")
					}
					month, err := resolveMonth(arg)
					if err != nil {
						return err
					}
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					entry, ok := query.Month(snapshot, month)
					if !ok {
						fmt.Printf("No data for month %q\nAvailable months: %s\n",
							month, strings.Join(query.Months(snapshot), ", "))
						return nil
					}
					printMonth(entry)
					return nil
				},
			},
			{
				Name:  "tags",
				Usage: "Work time grouped by CATEGORIES tag, with the untagged remainder",
				Action: func(c *cli.Context) error {
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					printTags(snapshot)
					return nil
				},
			},
			{
				Name:      "company",
				Usage:     "Search organizations by name substring",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					search := strings.Join(c.Args().Slice(), " ")
					if search == "" {
						return fmt.Errorf("company name to search is required")
					}
					snapshot, err := loadSnapshot(utils.NewConfig())
					if err != nil {
						return err
					}
					matches := query.FindCompanies(snapshot, search)
					if len(matches) == 0 {
						fmt.Printf("No companies found matching %q\n", search)
						return nil
					}
					printCompanies(matches)
					return nil
				},
			},
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the output directory over HTTP, with Prometheus metrics on /metrics",
		Action: func(c *cli.Context) error {
			config := utils.NewConfig()
			snapshotPath := filepath.Join(config.GetOutputDir(), aggregate.SnapshotFileName)

			shutdownCh := make(chan struct{})
			metric.Init(snapshotPath, time.Minute, shutdownCh)

			muxer := http.NewServeMux()
			muxer.Handle("GET /metrics", promhttp.Handler())
			route.Static(muxer, config.GetOutputDir())

			appCloseSignalChan := make(chan os.Signal, 1)
			go func() {
				if err := http.ListenAndServe(":"+config.GetPort(), muxer); err != nil {
					slog.Error("cannot start HTTP server", "error", err)
					appCloseSignalChan <- syscall.SIGTERM
				}
			}()

			slog.Info("serving reports",
				"dir", config.GetOutputDir(),
				"addr", "http://localhost:"+config.GetPort())

			signal.Notify(appCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			<-appCloseSignalChan
			close(shutdownCh)

			slog.Info("Gracefully shutting down...")
			return nil
		},
	}
}

func loadSnapshot(config *utils.Config) (*aggregate.Snapshot, error) {
	return aggregate.LoadSnapshot(filepath.Join(config.GetOutputDir(), aggregate.SnapshotFileName))
}

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// resolveMonth accepts YYYY-MM directly, anything else goes through a
// natural-language date parser ("last october", "3 months ago").
func resolveMonth(arg string) (string, error) {
	if monthRe.MatchString(arg) {
		return arg, nil
	}
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	result, err := parser.Parse(arg, time.Now())
	if err != nil || result == nil {
		return "", fmt.Errorf("can't understand month %q, use YYYY-MM", arg)
	}
	return result.Time.Format("2006-01"), nil
}

func printSummary(snapshot *aggregate.Snapshot) {
	summary := snapshot.Summary
	fmt.Println("CALENDAR ANALYSIS SUMMARY")
	fmt.Printf("Total Events: %d\n", summary.TotalEvents)
	fmt.Printf("Work-Relevant: %d events, %.1f hours\n", summary.WorkEvents, summary.WorkHours)
	fmt.Printf("Excluded: %d events, %.1f hours\n", summary.ExcludedEvents, summary.ExcludedHours)
	fmt.Printf("Stakeholders: %d\n", len(snapshot.Stakeholders))
	if summary.WorkEvents > 0 {
		fmt.Printf("Average Meeting Duration: %.2f hours\n",
			summary.WorkHours/float64(summary.WorkEvents))
	}

	fmt.Println("\nTime by Meeting Type:")
	type typeBucket struct {
		name   string
		bucket *aggregate.BucketStats
	}
	types := make([]typeBucket, 0, len(snapshot.TimeStats.ByMeetingType))
	total := 0.0
	for name, bucket := range snapshot.TimeStats.ByMeetingType {
		types = append(types, typeBucket{name, bucket})
		total += bucket.Hours
	}
	sort.Slice(types, func(i, j int) bool { return types[i].bucket.Hours > types[j].bucket.Hours })
	for _, entry := range types {
		pct := 0.0
		if total > 0 {
			pct = entry.bucket.Hours / total * 100
		}
		fmt.Printf("  %s: %.1f hours (%.1f%%)\n", entry.name, entry.bucket.Hours, pct)
	}

	fmt.Println("\nMonthly Breakdown:")
	for _, month := range query.Months(snapshot) {
		bucket := snapshot.TimeStats.ByMonth[month]
		fmt.Printf("  %s: %d meetings, %.1f hours\n", month, bucket.Count, bucket.Hours)
	}
}

func printStakeholderTable(entries []query.StakeholderEntry) {
	fmt.Printf("%-6s %-35s %-8s %-9s %s\n", "Rank", "Name", "Hours", "Meetings", "Company")
	for i, entry := range entries {
		company := "Unknown"
		if len(entry.Record.Companies) > 0 {
			company = entry.Record.Companies[0]
		}
		fmt.Printf("%-6d %-35s %-8.1f %-9d %s\n",
			i+1, clip(entry.Name, 34), entry.Record.Hours, entry.Record.Count, company)
	}
}

func printStakeholderDetails(entries []query.StakeholderEntry) {
	for _, entry := range entries {
		record := entry.Record
		fmt.Printf("\nName: %s\n", entry.Name)
		fmt.Printf("  Total Meetings: %d\n", record.Count)
		fmt.Printf("  Total Hours: %.1f\n", record.Hours)
		fmt.Printf("  As Organizer: %d | As Attendee: %d\n", record.AsOrganizer, record.AsAttendee)
		fmt.Printf("  Companies: %s\n", strings.Join(record.Companies, ", "))
		fmt.Printf("  Months Active: %s\n", strings.Join(record.MonthsActive, ", "))
		if len(record.MeetingTypes) > 0 {
			names := make([]string, 0, len(record.MeetingTypes))
			for name := range record.MeetingTypes {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Println("  Meeting Types:")
			for _, name := range names {
				fmt.Printf("    - %s: %d\n", name, record.MeetingTypes[name])
			}
		}
	}
}

func printMonth(entry query.MonthEntry) {
	fmt.Printf("MONTH ANALYSIS: %s\n", entry.Month)
	fmt.Printf("Total Meetings: %d\n", entry.Bucket.Count)
	fmt.Printf("Total Hours: %.1f\n", entry.Bucket.Hours)
	if entry.Bucket.Count > 0 {
		fmt.Printf("Average Duration: %.2f hours\n",
			entry.Bucket.Hours/float64(entry.Bucket.Count))
	}

	fmt.Printf("\nTop Stakeholders Active in %s:\n", entry.Month)
	for i, stakeholder := range entry.ActiveThere {
		if i >= 10 {
			break
		}
		fmt.Printf("  %d. %s: %.1f hours (%d meetings)\n",
			i+1, stakeholder.Name, stakeholder.Record.Hours, stakeholder.Record.Count)
	}
}

func printTags(snapshot *aggregate.Snapshot) {
	entries := query.Tags(snapshot)

	tagged := 0
	taggedHours := 0.0
	for _, entry := range entries {
		tagged += entry.Stats.Count
		taggedHours += entry.Stats.Hours
	}

	fmt.Println("TAG-BASED ANALYSIS")
	fmt.Printf("Tagged Meetings: %d (%.1f hours)\n", tagged, taggedHours)
	fmt.Printf("Untagged Meetings: %d (%.1f hours)\n",
		snapshot.Untagged.Count, snapshot.Untagged.Hours)

	fmt.Printf("\n%-30s %-10s %-10s %-12s %s\n", "Tag", "Meetings", "Hours", "% of Tagged", "Months Active")
	for _, entry := range entries {
		pct := 0.0
		if taggedHours > 0 {
			pct = entry.Stats.Hours / taggedHours * 100
		}
		fmt.Printf("%-30s %-10d %-10.1f %-12.1f %d\n",
			clip(entry.Tag, 29), entry.Stats.Count, entry.Stats.Hours, pct, len(entry.Stats.MonthsActive))
	}

	for _, entry := range entries {
		fmt.Printf("\nTag: %s\n", entry.Tag)
		fmt.Printf("  Meetings: %d | Hours: %.1f\n", entry.Stats.Count, entry.Stats.Hours)
		fmt.Printf("  Months Active: %s\n", strings.Join(entry.Stats.MonthsActive, ", "))
		for _, sample := range entry.Stats.Samples {
			organizer := sample.Organizer
			if organizer == "" {
				organizer = "Unknown"
			}
			fmt.Printf("    - %s (%s, %.2fh)\n", sample.Summary, organizer, sample.DurationHours)
		}
	}

	if len(snapshot.Untagged.Samples) > 0 {
		fmt.Println("\nSample untagged meetings:")
		for _, sample := range snapshot.Untagged.Samples {
			fmt.Printf("  - %s (%.2fh)\n", clip(sample.Summary, 70), sample.DurationHours)
		}
	}
}

func printCompanies(entries []query.CompanyEntry) {
	for _, entry := range entries {
		fmt.Printf("\nCompany: %s\n", entry.Company)
		fmt.Printf("  Total Hours: %.1f\n", entry.Hours)
		fmt.Printf("  Total Meetings: %d\n", entry.Meetings)
		fmt.Printf("  People Engaged (%d):\n", len(entry.People))
		for i, person := range entry.People {
			if i >= 10 {
				break
			}
			fmt.Printf("    - %s: %.1f hours (%d meetings)\n",
				person.Name, person.Record.Hours, person.Record.Count)
		}
	}
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
