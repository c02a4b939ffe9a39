package curriculum

import (
	"strings"

	"github.com/spf13/viper"

	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// Load resolves the active curriculum: an external YAML file when one is
// configured, otherwise a built-in revision. The result is validated either
// way, so a broken override fails at startup rather than mid-report.
func Load(revision, file string) (Curriculum, error) {
	if file != "" {
		c, err := LoadFile(file)
		if err != nil {
			return Curriculum{}, err
		}
		return c, nil
	}

	c, err := Builtin(revision)
	if err != nil {
		return Curriculum{}, err
	}
	if err := c.Validate(); err != nil {
		return Curriculum{}, err
	}
	return c, nil
}

// LoadFile reads a curriculum revision from a YAML file.
func LoadFile(path string) (Curriculum, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Curriculum{}, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, "read curriculum file")
	}

	var c Curriculum
	if err := v.Unmarshal(&c); err != nil {
		return Curriculum{}, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, "parse curriculum file")
	}
	normalize(&c)
	if err := c.Validate(); err != nil {
		return Curriculum{}, err
	}
	return c, nil
}

// normalize upper-cases the enum-like fields. Viper folds map keys to lower
// case while reading, so combined-minimum kinds arrive as "mcq" and would
// never match their components otherwise.
func normalize(c *Curriculum) {
	for i, sub := range c.Subjects {
		c.Subjects[i].Role = SubjectRole(strings.ToUpper(string(sub.Role)))
		c.Subjects[i].Scheme = PassScheme(strings.ToUpper(string(sub.Scheme)))
		for j, comp := range sub.Components {
			c.Subjects[i].Components[j].Kind = ComponentKind(strings.ToUpper(string(comp.Kind)))
		}
		if len(sub.CombinedMin) > 0 {
			minimums := make(map[ComponentKind]float64, len(sub.CombinedMin))
			for kind, min := range sub.CombinedMin {
				minimums[ComponentKind(strings.ToUpper(string(kind)))] = min
			}
			c.Subjects[i].CombinedMin = minimums
		}
	}
}
