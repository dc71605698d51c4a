package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/logger"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/monitoring"
)

// ResumeService is a bounded context separate from the assessment core: it
// polls a mailbox for resume attachments, tallies them per hiring category
// and uploads the tally as a JSON report to the storage service. It reads
// nothing from and writes nothing to the assessment store.
type ResumeService struct {
	Mailbox Mailbox
	Storage *StorageService
	Cfg     *config.MailboxConfig

	mu         sync.RWMutex
	lastReport *ScanReport
}

func NewResumeService(mailbox Mailbox, storage *StorageService, cfg *config.MailboxConfig) *ResumeService {
	return &ResumeService{Mailbox: mailbox, Storage: storage, Cfg: cfg}
}

// ScanReport is what one mailbox pass produces.
type ScanReport struct {
	ScannedAt  time.Time      `json:"scannedAt"`
	Query      string         `json:"query"`
	Matches    int            `json:"matches"`
	Categories map[string]int `json:"categories"`
	ReportURL  string         `json:"reportUrl,omitempty"`
}

// categoryKeywords buckets a resume by filename or subject. First match
// wins; anything else lands in "other".
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"physical_design", []string{"physical design", "pd", "pnr", "place and route"}},
	{"timing", []string{"sta", "timing"}},
	{"verification", []string{"verification", "dv", "uvm"}},
	{"analog", []string{"analog", "layout"}},
}

// UpdateMailbox swaps the scan parameters. Called from the config reload
// path; the next Scan picks up the new query.
func (s *ResumeService) UpdateMailbox(cfg *config.MailboxConfig) {
	s.mu.Lock()
	s.Cfg = cfg
	s.mu.Unlock()
}

// Scan runs one mailbox pass. The report is kept in memory for the admin
// endpoint and uploaded to storage for record keeping.
func (s *ResumeService) Scan(ctx context.Context) (*ScanReport, error) {
	s.mu.RLock()
	query, limit := s.Cfg.Query, s.Cfg.MaxResults
	s.mu.RUnlock()

	messages, err := s.Mailbox.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("mailbox scan: %w", err)
	}

	report := &ScanReport{
		ScannedAt:  time.Now(),
		Query:      query,
		Categories: make(map[string]int),
	}
	for _, msg := range messages {
		if len(msg.Attachments) == 0 {
			continue
		}
		report.Matches++
		report.Categories[categorize(msg)]++
	}

	if err := s.uploadReport(ctx, report); err != nil {
		// The tally itself is still useful; keep it and surface the upload
		// failure in the log only.
		logger.Log.Error("resume report upload failed", zap.Error(err))
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	monitoring.ResumeScans.Inc()
	logger.Log.Info("resume mailbox scanned",
		zap.Int("matches", report.Matches),
		zap.Int("categories", len(report.Categories)))
	return report, nil
}

// LastReport returns the most recent scan result, or nil before the first
// pass.
func (s *ResumeService) LastReport() *ScanReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastReport == nil {
		return nil
	}
	cp := *s.lastReport
	cp.Categories = make(map[string]int, len(s.lastReport.Categories))
	for k, v := range s.lastReport.Categories {
		cp.Categories[k] = v
	}
	return &cp
}

// Poll runs Scan on a fixed interval until stop is closed. The interval is
// fixed at startup; UpdateMailbox changes only what each pass scans for.
func (s *ResumeService) Poll(stop <-chan struct{}) {
	s.mu.RLock()
	interval := s.Cfg.PollInterval
	s.mu.RUnlock()
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			if _, err := s.Scan(ctx); err != nil {
				logger.Log.Error("scheduled resume scan failed", zap.Error(err))
			}
			cancel()
		case <-stop:
			return
		}
	}
}

func (s *ResumeService) uploadReport(ctx context.Context, report *ScanReport) error {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("resume-reports/%s-%s.json",
		report.ScannedAt.Format("2006-01-02"), uuid.New().String())
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(body), int64(len(body)), "application/json")
	if err != nil {
		return err
	}
	report.ReportURL = url
	return nil
}

// categorize matches single-word keywords against whole tokens so "pd" does
// not fire on every ".pdf" filename; phrases match as substrings.
func categorize(msg MailMessage) string {
	haystack := strings.ToLower(msg.Subject + " " + strings.Join(msg.Attachments, " "))
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(haystack, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[tok] = true
	}
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.ContainsRune(kw, ' ') {
				if strings.Contains(haystack, kw) {
					return c.name
				}
			} else if tokens[kw] {
				return c.name
			}
		}
	}
	return "other"
}
