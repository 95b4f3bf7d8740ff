package bfrun

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence is the run ledger: a sqlite file of RunReports.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var pragmas strings.Builder
	pragma_count := len(config.SQLitePragmas) - 1
	for i, prag := range config.SQLitePragmas {
		pragmas.WriteString(fmt.Sprintf("_pragma=%s", prag))
		if i < pragma_count {
			pragmas.WriteRune('&')
		}
	}

	var options strings.Builder
	option_count := len(config.SQLiteOptions) - 1
	for i, opt := range config.SQLiteOptions {
		options.WriteString(opt)
		if i < option_count {
			options.WriteRune('&')
		}
	}

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if pragmas.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(pragmas.String())
		if options.Len() > 0 {
			path.WriteRune('&')
			path.WriteString(options.String())
		}
	} else if options.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(options.String())
	}

	if DEBUG {
		log.Printf("Opening ledger at %q", path.String())
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(&RunReport{})
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

func (p *Persistence) CreateReport(report *RunReport) (uint, error) {
	if report == nil {
		return 0, fmt.Errorf("report cannot be nil")
	}

	if result := p.DB.Create(report); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return report.ID, nil
}

// RecentReports returns up to limit reports, newest first.
func (p *Persistence) RecentReports(limit int) ([]*RunReport, error) {
	var reports []*RunReport
	result := p.DB.Order("created_at desc, id desc").Limit(limit).Find(&reports)
	if result.Error != nil {
		return nil, fmt.Errorf("Failed to query recent reports: %w", result.Error)
	}
	return reports, nil
}

// FailedReports returns up to limit reports of runs that did not complete,
// newest first.
func (p *Persistence) FailedReports(limit int) ([]*RunReport, error) {
	var reports []*RunReport
	result := p.DB.Where("completed = ?", 0).
		Order("created_at desc, id desc").Limit(limit).Find(&reports)
	if result.Error != nil {
		return nil, fmt.Errorf("Failed to query failed reports: %w", result.Error)
	}
	return reports, nil
}

// LedgerStats aggregates the whole ledger.
type LedgerStats struct {
	TotalRuns               int64
	CompletedRuns           int64
	FailedRuns              int64
	AvgInstructionsExecuted float64
	AvgDurationNs           float64
}

func (s *LedgerStats) String() string {
	return fmt.Sprintf(
		"runs: %d (completed: %d, failed: %d), avg instructions executed: %.1f, avg duration: %s",
		s.TotalRuns, s.CompletedRuns, s.FailedRuns,
		s.AvgInstructionsExecuted,
		time.Duration(int64(s.AvgDurationNs)),
	)
}

func (p *Persistence) Stats() (*LedgerStats, error) {
	stats := &LedgerStats{}

	if result := p.DB.Model(&RunReport{}).Count(&stats.TotalRuns); result.Error != nil {
		return nil, fmt.Errorf("Failed to count runs: %w", result.Error)
	}
	if result := p.DB.Model(&RunReport{}).Where("completed = ?", 1).
		Count(&stats.CompletedRuns); result.Error != nil {
		return nil, fmt.Errorf("Failed to count completed runs: %w", result.Error)
	}
	stats.FailedRuns = stats.TotalRuns - stats.CompletedRuns

	if stats.TotalRuns > 0 {
		row := p.DB.Model(&RunReport{}).
			Select("avg(instructions_executed), avg(duration_ns)").Row()
		if err := row.Scan(&stats.AvgInstructionsExecuted, &stats.AvgDurationNs); err != nil {
			return nil, fmt.Errorf("Failed to scan ledger averages: %w", err)
		}
	}

	return stats, nil
}

// PruneOlderThan deletes reports created before cutoff and reports how many
// went.
func (p *Persistence) PruneOlderThan(cutoff time.Time) (int64, error) {
	result := p.DB.Where("created_at < ?", cutoff).Delete(&RunReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("Failed to prune by age: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PruneKeepLatest deletes everything but the newest keep reports.
func (p *Persistence) PruneKeepLatest(keep uint) (int64, error) {
	result := p.DB.Where(
		"id not in (?)",
		p.DB.Model(&RunReport{}).Select("id").
			Order("created_at desc, id desc").Limit(int(keep)),
	).Delete(&RunReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("Failed to prune by count: %w", result.Error)
	}
	return result.RowsAffected, nil
}
