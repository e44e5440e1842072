package main

import (
	"context"
	"strings"
	"sync"

	"github.com/humanbelnik/kinopick/internal/app"
	"github.com/humanbelnik/kinopick/internal/config"
	"github.com/humanbelnik/kinopick/internal/logger"
	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag *string

	once    sync.Once
	usecase *usecase_movie.Usecase
	err     error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// movies builds the usecase on first use. Log output goes to the command's stderr.
func (c *commandContext) movies(cmd *cobra.Command) (*usecase_movie.Usecase, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg := config.LoadFrom(path, false)
		lg := logger.New(cfg.Log, cmd.ErrOrStderr())

		c.usecase, c.err = app.NewMovieUsecase(commandCtx(cmd), cfg, lg)
	})
	return c.usecase, c.err
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
