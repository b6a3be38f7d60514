package types

import (
	"github.com/sirupsen/logrus"

	"github.com/NiklasVoigt/sharpctl/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Config  *config.Config
	Log     *logrus.Logger
}
