package app

import (
	"sync/atomic"
	"time"
)

// Progress tracks a scan's live counters. Workers bump it concurrently;
// the ops server reads snapshots.
type Progress struct {
	totalPages   atomic.Int64
	scannedPages atomic.Int64
	failedPages  atomic.Int64
	reviews      atomic.Int64
	startedAt    atomic.Int64 // unix nanos, 0 until Begin
	finished     atomic.Bool
}

func NewProgress() *Progress { return &Progress{} }

func (p *Progress) Begin(totalPages int) {
	p.totalPages.Store(int64(totalPages))
	p.startedAt.Store(time.Now().UnixNano())
}

func (p *Progress) PageDone(reviews int) {
	p.scannedPages.Add(1)
	p.reviews.Add(int64(reviews))
}

func (p *Progress) PageFailed() { p.failedPages.Add(1) }

func (p *Progress) Finish() { p.finished.Store(true) }

type ProgressSnapshot struct {
	TotalPages   int64   `json:"total_pages"`
	ScannedPages int64   `json:"scanned_pages"`
	FailedPages  int64   `json:"failed_pages"`
	Reviews      int64   `json:"reviews"`
	ElapsedSec   float64 `json:"elapsed_seconds"`
	Finished     bool    `json:"finished"`
}

func (p *Progress) Snapshot() ProgressSnapshot {
	s := ProgressSnapshot{
		TotalPages:   p.totalPages.Load(),
		ScannedPages: p.scannedPages.Load(),
		FailedPages:  p.failedPages.Load(),
		Reviews:      p.reviews.Load(),
		Finished:     p.finished.Load(),
	}
	if start := p.startedAt.Load(); start > 0 {
		s.ElapsedSec = time.Since(time.Unix(0, start)).Seconds()
	}
	return s
}
