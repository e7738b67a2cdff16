package pipeline

import (
	"sync"
	"time"

	"github.com/wesleyflorence/bookchat/internal/analysis"
	"github.com/wesleyflorence/bookchat/internal/segment"
)

// JobStatus represents the state of a book job.
type JobStatus string

const (
	StatusQueued        JobStatus = "queued"
	StatusParsing       JobStatus = "parsing"
	StatusExtractingTOC JobStatus = "extracting_toc"
	StatusScanning      JobStatus = "scanning"
	StatusSplitting     JobStatus = "splitting"
	StatusAnalyzing     JobStatus = "analyzing"
	StatusCompleted     JobStatus = "completed"
	StatusFailed        JobStatus = "failed"
	StatusPartial       JobStatus = "partial"
)

// Job tracks the state of a single book from upload through review.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	chapters []segment.ChapterRange
	review   *analysis.Review
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalChapters    int      `json:"total_chapters"`
	ChaptersAnalyzed int      `json:"chapters_analyzed"`
	Errors           []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalChapters records how many chapter ranges the book split into.
func (j *Job) SetTotalChapters(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChapters = n
	j.UpdatedAt = time.Now()
}

// IncrChaptersAnalyzed atomically increments the analyzed count.
func (j *Job) IncrChaptersAnalyzed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChaptersAnalyzed++
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetChapters records the materialized chapter ranges.
func (j *Job) SetChapters(chapters []segment.ChapterRange) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.chapters = chapters
	j.UpdatedAt = time.Now()
}

// Chapters returns the materialized chapter ranges, in document order.
func (j *Job) Chapters() []segment.ChapterRange {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.chapters
}

// Chapter looks up a chapter range by key.
func (j *Job) Chapter(key string) (segment.ChapterRange, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ch := range j.chapters {
		if ch.Key == key {
			return ch, true
		}
	}
	return segment.ChapterRange{}, false
}

// InitReview starts the review document for this book.
func (j *Job) InitReview(bookTitle string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.review = analysis.NewReview(bookTitle)
}

// AppendAnalysis adds one chapter's analysis to the review.
func (j *Job) AppendAnalysis(text string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.review != nil {
		j.review.AddChapter(text)
	}
	j.UpdatedAt = time.Now()
}

// AppendExchange adds a question/answer pair to the review.
func (j *Job) AppendExchange(question, answer string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.review != nil {
		j.review.AddExchange(question, answer)
	}
	j.UpdatedAt = time.Now()
}

// ReviewMarkdown returns the review document so far; "" if no review
// has been started.
func (j *Job) ReviewMarkdown() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.review == nil {
		return ""
	}
	return j.review.Markdown()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalChapters:    j.Progress.TotalChapters,
			ChaptersAnalyzed: j.Progress.ChaptersAnalyzed,
			Errors:           errs,
		},
	}
}
