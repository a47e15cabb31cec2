package orchestration

import (
	"strings"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
)

// GetEngine returns the engine named by cfg.Engine. An unknown name is a
// configuration error listing the registered engines.
func GetEngine(cfg config.AppConfig, factory chudnovsky.Factory) (chudnovsky.Engine, error) {
	engine, err := factory.Get(cfg.Engine)
	if err != nil {
		return nil, apperrors.NewConfigError("unknown engine %q (available: %s)", cfg.Engine, strings.Join(factory.List(), ", "))
	}
	return engine, nil
}
