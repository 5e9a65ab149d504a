package usecase

import "context"

// Now returns nanoseconds elapsed since the clock origin. It never touches
// the timer registry.
func (s *Usecase) Now(context.Context) int64 {
	return s.clock.Elapsed().Nanoseconds()
}
