package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"attendance-engine/internal/config"
	"attendance-engine/internal/handler"
	"attendance-engine/internal/repository"
	"attendance-engine/internal/service"
	"attendance-engine/pkg/export"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	optionsPath string

	processInput    string
	processMonth    string
	processGrace    int
	processDedup    int
	processRollHour int
	processOutDir   string
	processFormat   string
	processEmployee int

	scheduleOut   string
	scheduleFile  string
	scheduleMaxID int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "attendance",
		Short:         "Attendance reports from biometric punch logs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&optionsPath, "config", "", "engine options file (TOML)")

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newScheduleCmd())

	return rootCmd
}

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Parse a raw punch dump and build punch/daily/summary reports",
		Args:  cobra.NoArgs,
		RunE:  runProcessCmd,
	}

	cmd.Flags().StringVar(&processInput, "input", "", "raw punch text file")
	cmd.Flags().StringVar(&processMonth, "month", service.MonthAll, "month filter (yyyy-mm or ALL)")
	cmd.Flags().IntVar(&processGrace, "grace", config.DefaultGraceMinutes, "late-arrival grace period, minutes")
	cmd.Flags().IntVar(&processDedup, "dedup", config.DefaultDedupSeconds, "duplicate punch window, seconds")
	cmd.Flags().IntVar(&processRollHour, "roll-hour", config.DefaultRollHour, "shift roll-over hour (0-23)")
	cmd.Flags().StringVar(&processOutDir, "out-dir", ".", "output directory")
	cmd.Flags().StringVar(&processFormat, "format", "tsv", "output format: tsv or xlsx")
	cmd.Flags().IntVar(&processEmployee, "employee", 0, "also write a report for this employee id")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runProcessCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	if processFormat != "tsv" && processFormat != "xlsx" {
		return fmt.Errorf("unknown format %q (expected tsv or xlsx)", processFormat)
	}

	rawBytes, err := os.ReadFile(processInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	h, closeDB, err := buildHandler(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := h.Process(string(rawBytes), processMonth)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"raw_rows":   res.RawCount,
		"clean_rows": res.CleanCount,
		"daily_rows": len(res.Daily),
		"employees":  res.MaxEmployeeID,
	}).Info("Pipeline finished")

	for _, m := range res.Months {
		logrus.Infof("Month available: %s (%s)", m.Label, m.Key)
	}
	if res.HasBest {
		logrus.Infof("Best performer: %d - %s", res.BestID, res.BestName)
	} else {
		logrus.Info("Best performer: —")
	}

	suffix := strings.ToLower(processMonth)

	header, cells := export.PunchTable(res.Punches)
	if err := writeTable("punches_"+suffix, "Punches", header, cells); err != nil {
		return err
	}

	header, cells = export.DailyTable(res.Daily, &res.DailyTotals)
	if err := writeTable("daily_"+suffix, "DailyAttendance", header, cells); err != nil {
		return err
	}

	header, cells = export.SummaryTable(res.Summary, &res.SummaryTotals)
	if err := writeTable("summary_"+suffix, "MonthlySummary", header, cells); err != nil {
		return err
	}

	if processEmployee > 0 {
		report := h.EmployeeReport(res, processEmployee)
		logrus.WithFields(logrus.Fields{
			"employee_id":  report.EmployeeID,
			"days_present": report.DaysPresent,
			"days_absent":  report.DaysAbsent,
			"late_min":     report.LateMinutes,
			"ot_min":       report.OTMinutes,
			"work_hours":   report.WorkHours,
		}).Info("Employee report")
		logrus.Infof("First punch: %s", report.FirstPunch)
		logrus.Infof("Last punch: %s", report.LastPunch)

		totals := h.DailyTotals(report.Daily)
		header, cells = export.DailyTable(report.Daily, &totals)
		name := fmt.Sprintf("employee_%d_daily_%s", processEmployee, suffix)
		if err := writeTable(name, "EmployeeReport", header, cells); err != nil {
			return err
		}
	}

	return nil
}

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Export or import the per-employee work schedule table",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the schedule table to a TSV file",
		Args:  cobra.NoArgs,
		RunE:  runScheduleExportCmd,
	}
	exportCmd.Flags().StringVar(&scheduleOut, "out", "schedule.tsv", "output file")
	exportCmd.Flags().IntVar(&scheduleMaxID, "max-id", 0, "highest employee id (0 = highest stored)")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a schedule TSV file (partial rows allowed)",
		Args:  cobra.NoArgs,
		RunE:  runScheduleImportCmd,
	}
	importCmd.Flags().StringVar(&scheduleFile, "file", "", "schedule TSV file")
	importCmd.Flags().IntVar(&scheduleMaxID, "max-id", 0, "highest accepted employee id (0 = no cap)")
	_ = importCmd.MarkFlagRequired("file")

	cmd.AddCommand(exportCmd)
	cmd.AddCommand(importCmd)
	return cmd
}

func runScheduleExportCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	h, closeDB, err := buildHandler(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	maxID := scheduleMaxID
	if maxID <= 0 {
		maxID = h.StoredMaxEmployeeID()
	}
	if maxID < 1 {
		return fmt.Errorf("schedule table is empty, run process first or pass --max-id")
	}

	header, cells := export.ScheduleTable(h.ExportSchedule(maxID))
	if err := export.WriteTSV(scheduleOut, header, cells); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file":      scheduleOut,
		"employees": maxID,
	}).Info("Schedule exported")
	return nil
}

func runScheduleImportCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(scheduleFile)
	if err != nil {
		return fmt.Errorf("failed to read schedule file: %w", err)
	}
	rows, err := export.ParseScheduleTSV(string(text))
	if err != nil {
		return err
	}

	h, closeDB, err := buildHandler(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	updated, err := h.ImportSchedule(rows, scheduleMaxID)
	if err != nil {
		return err
	}

	logrus.WithField("updated", updated).Info("Schedule imported")
	return nil
}

// resolveOptions читает файл настроек и накладывает поверх него флаги,
// явно заданные пользователем
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	path := optionsPath
	if path == "" {
		path = config.GetEngineConfig().OptionsPath
	}

	opts, err := config.LoadOptions(path)
	if err != nil {
		return config.Options{}, fmt.Errorf("failed to load options file: %w", err)
	}

	applyIntFlag(cmd, "grace", &opts.GraceMinutes, processGrace)
	applyIntFlag(cmd, "dedup", &opts.DedupSeconds, processDedup)
	applyIntFlag(cmd, "roll-hour", &opts.RollHour, processRollHour)

	if err := opts.Validate(); err != nil {
		logrus.WithError(err).Warn("Invalid engine options, falling back to defaults")
	}
	opts.Normalize()

	return opts, nil
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Lookup(name) == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

// buildHandler собирает репозиторий, сервисы и обработчик поверх SQLite
func buildHandler(opts config.Options) (*handler.Handler, func(), error) {
	cfg := config.GetEngineConfig()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get database instance")
		return nil, nil, err
	}

	scheduleRepo, err := repository.NewGormScheduleRepository(db)
	if err != nil {
		logrus.WithError(err).Error("Failed to create schedule repository")
		return nil, nil, err
	}

	punchService := service.NewPunchService()
	scheduleService := service.NewScheduleService(scheduleRepo, nil)
	shiftResolver := service.NewShiftResolver(scheduleService, opts)
	dailyService := service.NewDailyService(scheduleService, shiftResolver, opts)
	summaryService := service.NewSummaryService(scheduleService)

	h := handler.NewHandler(punchService, scheduleService, dailyService, summaryService, scheduleRepo, opts)

	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logrus.Infof("Error closing database: %v", err)
		}
	}
	return h, closeDB, nil
}

func writeTable(name, sheet string, header []string, cells [][]string) error {
	if processFormat == "xlsx" {
		path := filepath.Join(processOutDir, name+".xlsx")
		if err := export.WriteXLSX(path, sheet, header, cells); err != nil {
			return err
		}
		logrus.Infof("Wrote %s", path)
		return nil
	}

	path := filepath.Join(processOutDir, name+".tsv")
	if err := export.WriteTSV(path, header, cells); err != nil {
		return err
	}
	logrus.Infof("Wrote %s", path)
	return nil
}
