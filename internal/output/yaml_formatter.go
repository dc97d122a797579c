package output

import (
	"github.com/sanchay/planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the projection report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return yaml.Marshal(report)
}
