package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
)

type fakeMailbox struct {
	messages []MailMessage
	err      error
	gotQuery string
	gotLimit int
}

func (m *fakeMailbox) Search(ctx context.Context, query string, limit int) ([]MailMessage, error) {
	m.gotQuery = query
	m.gotLimit = limit
	return m.messages, m.err
}

type fakeStorage struct {
	uploaded map[string][]byte
	err      error
}

func (s *fakeStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	body, _ := io.ReadAll(reader)
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[filename] = body
	return "/fake/" + filename, nil
}

func (s *fakeStorage) Delete(ctx context.Context, filename string) error { return nil }
func (s *fakeStorage) GetURL(filename string) string                     { return "/fake/" + filename }

func newTestResumeService(mailbox Mailbox, storage StorageProvider) *ResumeService {
	cfg := &config.MailboxConfig{Query: "has:attachment resume", MaxResults: 50}
	return NewResumeService(mailbox, &StorageService{Provider: storage}, cfg)
}

func TestScanTalliesByCategory(t *testing.T) {
	mailbox := &fakeMailbox{messages: []MailMessage{
		{ID: "1", Subject: "STA engineer resume", Attachments: []string{"cv.pdf"}},
		{ID: "2", Subject: "resume", Attachments: []string{"pnr_cv.pdf"}},
		{ID: "3", Subject: "UVM verification resume", Attachments: []string{"cv.pdf"}},
		{ID: "4", Subject: "random resume", Attachments: []string{"cv.pdf"}},
		{ID: "5", Subject: "no attachment here"},
	}}
	storage := &fakeStorage{}
	svc := newTestResumeService(mailbox, storage)

	report, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if mailbox.gotQuery != "has:attachment resume" || mailbox.gotLimit != 50 {
		t.Errorf("search called with %q %d", mailbox.gotQuery, mailbox.gotLimit)
	}
	if report.Matches != 4 {
		t.Errorf("Matches = %d, want 4", report.Matches)
	}
	want := map[string]int{"timing": 1, "physical_design": 1, "verification": 1, "other": 1}
	for k, v := range want {
		if report.Categories[k] != v {
			t.Errorf("Categories[%s] = %d, want %d", k, report.Categories[k], v)
		}
	}
	if len(storage.uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(storage.uploaded))
	}
	for name := range storage.uploaded {
		if !strings.HasPrefix(name, "resume-reports/") || !strings.HasSuffix(name, ".json") {
			t.Errorf("report name = %q", name)
		}
	}
	if report.ReportURL == "" {
		t.Error("ReportURL not set")
	}
}

func TestScanSurvivesUploadFailure(t *testing.T) {
	mailbox := &fakeMailbox{messages: []MailMessage{
		{ID: "1", Subject: "resume", Attachments: []string{"cv.pdf"}},
	}}
	svc := newTestResumeService(mailbox, &fakeStorage{err: errors.New("bucket down")})

	report, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.Matches != 1 {
		t.Errorf("Matches = %d, want 1", report.Matches)
	}
	if report.ReportURL != "" {
		t.Errorf("ReportURL = %q, want empty on upload failure", report.ReportURL)
	}
}

func TestScanMailboxError(t *testing.T) {
	wantErr := errors.New("token expired")
	svc := newTestResumeService(&fakeMailbox{err: wantErr}, &fakeStorage{})

	if _, err := svc.Scan(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
	if svc.LastReport() != nil {
		t.Error("failed scan recorded a report")
	}
}

func TestLastReportIsCopy(t *testing.T) {
	mailbox := &fakeMailbox{messages: []MailMessage{
		{ID: "1", Subject: "resume", Attachments: []string{"cv.pdf"}},
	}}
	svc := newTestResumeService(mailbox, &fakeStorage{})
	svc.Scan(context.Background())

	first := svc.LastReport()
	first.Categories["other"] = 999
	second := svc.LastReport()
	if second.Categories["other"] == 999 {
		t.Fatal("caller mutation reached the stored report")
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		msg  MailMessage
		want string
	}{
		{"subject match", MailMessage{Subject: "Senior PNR engineer"}, "physical_design"},
		{"attachment match", MailMessage{Subject: "resume", Attachments: []string{"sta_profile.pdf"}}, "timing"},
		{"first category wins", MailMessage{Subject: "PD engineer with STA background"}, "physical_design"},
		{"analog", MailMessage{Subject: "analog layout resume"}, "analog"},
		{"fallback", MailMessage{Subject: "marketing resume"}, "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorize(tt.msg); got != tt.want {
				t.Errorf("categorize = %q, want %q", got, tt.want)
			}
		})
	}
}
