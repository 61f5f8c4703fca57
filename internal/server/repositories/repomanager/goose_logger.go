package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/pressly/goose/v3"
)

// osExit is swapped in tests.
var osExit = os.Exit

// gooseLogger sends goose progress output through logging.Logger so that
// migration lines share the format of the rest of the server log.
type gooseLogger struct {
	logger logging.Logger
}

func newGooseLogger(l logging.Logger) goose.Logger {
	if l == nil {
		return goose.NopLogger()
	}
	return &gooseLogger{logger: l.With("module", "migrations")}
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	osExit(1)
}
