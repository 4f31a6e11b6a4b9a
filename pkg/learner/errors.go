package learner

import "errors"

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrNoRoadmap     = errors.New("no roadmap adopted")
	ErrEmptyRoadmap  = errors.New("roadmap has no weeks")
	ErrTrackRequired = errors.New("track is required")
)
