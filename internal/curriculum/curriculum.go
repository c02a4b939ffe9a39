package curriculum

import (
	"fmt"

	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// SubjectRole states how a subject participates in the final result.
type SubjectRole string

const (
	// RoleCompulsory subjects must pass and contribute to the base GPA.
	RoleCompulsory SubjectRole = "COMPULSORY"
	// RoleOptional subjects never gate pass/fail but can add a bonus.
	RoleOptional SubjectRole = "OPTIONAL"
	// RoleContinuous subjects gate pass/fail and never earn a grade point.
	RoleContinuous SubjectRole = "CONTINUOUS"
)

// PassScheme states how a subject's pass condition is evaluated.
type PassScheme string

const (
	// SchemeThreshold passes when the component sum reaches PassMark.
	SchemeThreshold PassScheme = "THRESHOLD"
	// SchemeSplit passes when every component reaches its own minimum, or
	// when the per-kind combined totals reach the combined minimums.
	// Either route suffices.
	SchemeSplit PassScheme = "SPLIT"
)

// ComponentKind distinguishes MCQ and written parts of split subjects.
type ComponentKind string

const (
	KindGeneral ComponentKind = "GENERAL"
	KindMCQ     ComponentKind = "MCQ"
	KindWritten ComponentKind = "WRITTEN"
)

// Component is one mark-entry column of a subject.
type Component struct {
	Label     string        `mapstructure:"label" json:"label"`
	FullMarks float64       `mapstructure:"full_marks" json:"full_marks"`
	Kind      ComponentKind `mapstructure:"kind" json:"kind"`
	// Min is the individual pass minimum under SchemeSplit.
	Min float64 `mapstructure:"min" json:"min"`
}

// Subject is the versioned configuration for one logical subject. Pass
// minimums are explicit constants, never derived from full marks: observed
// revisions disagree with a uniform 33% rule (ICT's minimum is 33% of 25 on
// a 50-mark subject), so deriving would silently rewrite history.
type Subject struct {
	ID          string                    `mapstructure:"id" json:"id"`
	Name        string                    `mapstructure:"name" json:"name"`
	Role        SubjectRole               `mapstructure:"role" json:"role"`
	Scheme      PassScheme                `mapstructure:"scheme" json:"scheme"`
	Components  []Component               `mapstructure:"components" json:"components"`
	PassMark    float64                   `mapstructure:"pass_mark" json:"pass_mark"`
	CombinedMin map[ComponentKind]float64 `mapstructure:"combined_min" json:"combined_min,omitempty"`
}

// FullMarks returns the subject's total denominator.
func (s Subject) FullMarks() float64 {
	total := 0.0
	for _, c := range s.Components {
		total += c.FullMarks
	}
	return total
}

// Curriculum is one revision of the examination rules. Subject order is the
// report column order.
type Curriculum struct {
	Revision string    `mapstructure:"revision" json:"revision"`
	Title    string    `mapstructure:"title" json:"title"`
	Subjects []Subject `mapstructure:"subjects" json:"subjects"`
}

// Compulsory returns the compulsory subjects in curriculum order.
func (c Curriculum) Compulsory() []Subject {
	return c.byRole(RoleCompulsory)
}

// Continuous returns the continuous-assessment subjects in curriculum order.
func (c Curriculum) Continuous() []Subject {
	return c.byRole(RoleContinuous)
}

// Optional returns the optional/bonus subject if the revision has one.
func (c Curriculum) Optional() (Subject, bool) {
	optional := c.byRole(RoleOptional)
	if len(optional) == 0 {
		return Subject{}, false
	}
	return optional[0], true
}

// Examined returns every subject that appears on the mark sheet with a
// grade point, i.e. compulsory plus optional, in curriculum order.
func (c Curriculum) Examined() []Subject {
	subjects := make([]Subject, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.Role == RoleCompulsory || s.Role == RoleOptional {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// Subject finds a subject by ID.
func (c Curriculum) Subject(id string) (Subject, bool) {
	for _, s := range c.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

func (c Curriculum) byRole(role SubjectRole) []Subject {
	subjects := make([]Subject, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.Role == role {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// Validate rejects configurations the grade engine cannot evaluate. All
// failures map to ErrConfiguration: they are fatal at setup time, never
// recoverable mid-computation.
func (c Curriculum) Validate() error {
	if c.Revision == "" {
		return appErrors.Clone(appErrors.ErrConfiguration, "curriculum revision is required")
	}
	if len(c.Compulsory()) == 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "curriculum has no compulsory subjects")
	}
	if len(c.byRole(RoleOptional)) > 1 {
		return appErrors.Clone(appErrors.ErrConfiguration, "curriculum has more than one optional subject")
	}

	seen := make(map[string]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.ID == "" {
			return appErrors.Clone(appErrors.ErrConfiguration, "subject without an id")
		}
		if seen[s.ID] {
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("duplicate subject %s", s.ID))
		}
		seen[s.ID] = true

		if len(s.Components) == 0 || len(s.Components) > 4 {
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s must have 1-4 components", s.ID))
		}
		full := s.FullMarks()
		if full <= 0 {
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s has non-positive full marks", s.ID))
		}
		for _, comp := range s.Components {
			if comp.FullMarks <= 0 {
				return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s component %s has non-positive full marks", s.ID, comp.Label))
			}
			if comp.Min < 0 || comp.Min > comp.FullMarks {
				return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s component %s minimum out of range", s.ID, comp.Label))
			}
		}

		switch s.Scheme {
		case SchemeThreshold:
			if s.PassMark < 0 || s.PassMark > full {
				return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s pass mark out of range", s.ID))
			}
		case SchemeSplit:
			if len(s.CombinedMin) == 0 {
				return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("split subject %s has no combined minimums", s.ID))
			}
			for kind, min := range s.CombinedMin {
				kindFull := 0.0
				for _, comp := range s.Components {
					if comp.Kind == kind {
						kindFull += comp.FullMarks
					}
				}
				if kindFull == 0 {
					return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("split subject %s combined minimum for absent kind %s", s.ID, kind))
				}
				if min < 0 || min > kindFull {
					return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("split subject %s combined minimum for %s out of range", s.ID, kind))
				}
			}
		default:
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("subject %s has unknown pass scheme %q", s.ID, s.Scheme))
		}

		if s.Role == RoleContinuous && len(s.Components) != 1 {
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("continuous subject %s must have a single component", s.ID))
		}
	}

	return nil
}

// Warnings reports configured pass minimums that deviate from a uniform
// 33%-of-full-marks rule. Deviations are carried as-is (the historical data
// is the source of truth); callers surface them instead of fixing them.
func (c Curriculum) Warnings() []string {
	var warnings []string
	for _, s := range c.Subjects {
		if s.Scheme != SchemeThreshold {
			continue
		}
		expected := 0.33 * s.FullMarks()
		if s.PassMark != expected {
			warnings = append(warnings, fmt.Sprintf(
				"subject %s pass mark %.2f differs from 33%% of full marks (%.2f)",
				s.ID, s.PassMark, expected))
		}
	}
	return warnings
}
