package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

func TestBuiltinRevisionsValidate(t *testing.T) {
	for _, revision := range Revisions() {
		t.Run(revision, func(t *testing.T) {
			c, err := Builtin(revision)
			require.NoError(t, err)
			assert.NoError(t, c.Validate())
		})
	}
}

func TestBuiltinUnknownRevision(t *testing.T) {
	_, err := Builtin("dakhil-1999")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestRevisionsSorted(t *testing.T) {
	assert.Equal(t, []string{"dakhil-2025", "general-2024"}, Revisions())
}

func TestDakhilShape(t *testing.T) {
	c, err := Builtin("dakhil-2025")
	require.NoError(t, err)

	assert.Len(t, c.Compulsory(), 8)
	assert.Len(t, c.Continuous(), 2)
	assert.Len(t, c.Examined(), 9)

	optional, ok := c.Optional()
	require.True(t, ok)
	assert.Equal(t, "mantiq", optional.ID)

	bangla, ok := c.Subject("bangla")
	require.True(t, ok)
	assert.Equal(t, SchemeSplit, bangla.Scheme)
	assert.Equal(t, 200.0, bangla.FullMarks())
	assert.Equal(t, 20.0, bangla.CombinedMin[KindMCQ])
	assert.Equal(t, 46.0, bangla.CombinedMin[KindWritten])

	ict, ok := c.Subject("ict")
	require.True(t, ok)
	assert.Equal(t, 8.25, ict.PassMark)
	assert.Equal(t, 50.0, ict.FullMarks())
}

func TestGeneralShape(t *testing.T) {
	c, err := Builtin("general-2024")
	require.NoError(t, err)

	assert.Len(t, c.Compulsory(), 7)
	assert.Empty(t, c.Continuous())
	_, ok := c.Optional()
	assert.False(t, ok)

	for _, sub := range c.Subjects {
		assert.Equal(t, SchemeThreshold, sub.Scheme)
		assert.Equal(t, 100.0, sub.FullMarks())
		assert.Equal(t, 33.0, sub.PassMark)
	}
}

func validBase() Curriculum {
	return Curriculum{
		Revision: "test",
		Subjects: []Subject{
			{
				ID: "alpha", Name: "Alpha", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Alpha", FullMarks: 100, Kind: KindGeneral}},
				PassMark:   33,
			},
		},
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Curriculum)
	}{
		{"missing revision", func(c *Curriculum) { c.Revision = "" }},
		{"no compulsory subjects", func(c *Curriculum) { c.Subjects[0].Role = RoleOptional }},
		{"subject without id", func(c *Curriculum) { c.Subjects[0].ID = "" }},
		{"duplicate subject", func(c *Curriculum) { c.Subjects = append(c.Subjects, c.Subjects[0]) }},
		{"no components", func(c *Curriculum) { c.Subjects[0].Components = nil }},
		{"too many components", func(c *Curriculum) {
			comp := c.Subjects[0].Components[0]
			c.Subjects[0].Components = []Component{comp, comp, comp, comp, comp}
		}},
		{"non-positive component marks", func(c *Curriculum) { c.Subjects[0].Components[0].FullMarks = 0 }},
		{"component minimum above full marks", func(c *Curriculum) { c.Subjects[0].Components[0].Min = 150 }},
		{"pass mark above full marks", func(c *Curriculum) { c.Subjects[0].PassMark = 120 }},
		{"negative pass mark", func(c *Curriculum) { c.Subjects[0].PassMark = -1 }},
		{"unknown scheme", func(c *Curriculum) { c.Subjects[0].Scheme = "LOTTERY" }},
		{"split without combined minimums", func(c *Curriculum) { c.Subjects[0].Scheme = SchemeSplit }},
		{"split minimum for absent kind", func(c *Curriculum) {
			c.Subjects[0].Scheme = SchemeSplit
			c.Subjects[0].CombinedMin = map[ComponentKind]float64{KindMCQ: 10}
		}},
		{"split minimum out of range", func(c *Curriculum) {
			c.Subjects[0].Scheme = SchemeSplit
			c.Subjects[0].Components[0].Kind = KindMCQ
			c.Subjects[0].CombinedMin = map[ComponentKind]float64{KindMCQ: 500}
		}},
		{"two optional subjects", func(c *Curriculum) {
			extra := c.Subjects[0]
			c.Subjects[0].Role = RoleCompulsory
			second, third := extra, extra
			second.ID, second.Role = "opt-a", RoleOptional
			third.ID, third.Role = "opt-b", RoleOptional
			c.Subjects = append(c.Subjects, second, third)
		}},
		{"continuous with multiple components", func(c *Curriculum) {
			comp := c.Subjects[0].Components[0]
			c.Subjects[0].Role = RoleContinuous
			c.Subjects[0].Components = []Component{comp, comp}
			c.Subjects = append(c.Subjects, Subject{
				ID: "beta", Name: "Beta", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Beta", FullMarks: 100}},
				PassMark:   33,
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validBase()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, appErrors.HasCode(err, appErrors.ErrConfiguration.Code))
		})
	}
}

func TestWarningsFlagNonUniformPassMarks(t *testing.T) {
	c, err := Builtin("dakhil-2025")
	require.NoError(t, err)

	warnings := c.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ict")
	assert.Contains(t, warnings[0], "8.25")
}

func TestWarningsEmptyForUniformRevision(t *testing.T) {
	c, err := Builtin("general-2024")
	require.NoError(t, err)
	assert.Empty(t, c.Warnings())
}
