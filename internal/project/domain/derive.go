package domain

import (
	"math"
	"strings"
	"time"

	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
)

// Sanitize trims free text, normalizes tags and fills empty enums with
// their defaults. It runs before Validate on every save.
func Sanitize(p *Project) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	p.Tags = entity.NormalizeTags(p.Tags)
}

// Progress is round(100*completed/total), or 0 for an empty project.
// Ties round away from zero.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// RecomputeProgress refreshes Meta.Progress from the counters.
func RecomputeProgress(p *Project) {
	p.Meta.Progress = Progress(p.Meta.CompletedTasks, p.Meta.TotalTasks)
}

// AutoComplete moves an active project at 100% to completed and stamps
// its end date when it has none. It reports whether the transition happened.
func AutoComplete(p *Project, now time.Time) bool {
	if p.Meta.Progress != 100 || p.Status != StatusActive {
		return false
	}
	p.Status = StatusCompleted
	if p.EndDate == nil {
		end := completionDate(p.StartDate, now)
		p.EndDate = &end
	}
	return true
}

// completionDate is now, or one second past a start date that is not yet
// behind now, so end_date stays after start_date. Whole seconds survive the
// storage backends' timestamp precision.
func completionDate(start, now time.Time) time.Time {
	if !now.After(start) {
		return start.Add(time.Second)
	}
	return now
}

// Prepare is the save pipeline: sanitize, validate, derive. Auto-completion
// only runs when metaChanged, so an unrelated edit never flips the status.
// Nothing is derived when validation fails.
func Prepare(p *Project, metaChanged bool, now time.Time) apperror.FieldErrors {
	Sanitize(p)
	if errs := Validate(p); !errs.Empty() {
		return errs
	}
	RecomputeProgress(p)
	if metaChanged {
		AutoComplete(p, now)
	}
	return nil
}
