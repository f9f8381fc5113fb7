package sim

import "fmt"

// Server processes at most one Job at a time.
// A Server knows nothing about the Queue that owns it: completions are handed
// back through the return value of Tick.
type Server struct {
	ID        int
	job       *Job
	BusyTicks int64 // ticks spent holding a job
}

// NewServer creates an idle server.
func NewServer(id int) *Server {
	return &Server{ID: id}
}

// Assign installs job as the held job. The caller guarantees the server is idle.
func (s *Server) Assign(job *Job, now int64) {
	job.State = StateRunning
	job.StartTick = now
	s.job = job
}

// Idle reports whether the server holds no job.
func (s *Server) Idle() bool {
	return s.job == nil
}

// Held returns the job currently in service, or nil.
func (s *Server) Held() *Job {
	return s.job
}

// Tick advances the held job by one tick. When the job completes it is
// released and returned; otherwise Tick returns nil.
func (s *Server) Tick() *Job {
	if s.job == nil {
		return nil
	}
	s.BusyTicks++
	s.job.Advance()
	if !s.job.IsComplete() {
		return nil
	}
	done := s.job
	s.job = nil
	return done
}

func (s *Server) String() string {
	if s.job == nil {
		return fmt.Sprintf("server-%d(idle)", s.ID)
	}
	return fmt.Sprintf("server-%d(job %d)", s.ID, s.job.ID)
}
