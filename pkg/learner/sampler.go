package learner

import "math/rand/v2"

// Sampler picks up to n tasks from a pool.
type Sampler interface {
	Sample(pool []Task, n int) []Task
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(pool []Task, n int) []Task

func (f SamplerFunc) Sample(pool []Task, n int) []Task {
	return f(pool, n)
}

// RandomSampler draws a uniform random subset without replacement.
type RandomSampler struct{}

var _ Sampler = RandomSampler{}

func (RandomSampler) Sample(pool []Task, n int) []Task {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return []Task{}
	}
	out := make([]Task, 0, n)
	for _, i := range rand.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// buildDailySet samples today's tasks from the flat roadmap view. Sampled
// tasks start uncompleted.
func buildDailySet(s Sampler, flat []Task, limit int) []Task {
	picked := s.Sample(flat, limit)
	if len(picked) > limit {
		picked = picked[:limit]
	}
	out := make([]Task, len(picked))
	for i, t := range picked {
		t.Completed = false
		out[i] = t
	}
	return out
}
