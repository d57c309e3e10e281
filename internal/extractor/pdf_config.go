package extractor

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// NewPDFConfiguration returns a relaxed pdfcpu configuration that never
// touches the user config directory. pdfcpu mutates the configuration per
// call, so callers take a fresh one for every operation.
func NewPDFConfiguration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
